package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/theirongolddev/ridewrap/internal/model"
	"github.com/theirongolddev/ridewrap/internal/pipeline"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testService(t *testing.T) *Service {
	t.Helper()
	in := pipeline.Input{
		Trips: []model.TripRecord{
			{Status: "completed", RequestTimeLocal: "2023-04-01 09:00:00", FareAmount: "20.00", City: "Boston",
				PickupLat: "42.3601", PickupLng: "-71.0589", DropoffLat: "42.35", DropoffLng: "-71.06"},
			{Status: "completed", RequestTimeLocal: "2023-04-02 09:00:00", FareAmount: "15.00", City: "Boston",
				PickupLat: "42.3601", PickupLng: "-71.0589"},
		},
		Orders: []model.OrderLine{
			{RequestTimeLocal: "2024-01-05 19:00:00", RestaurantName: "Pho 88", OrderPrice: "18.00", ItemName: "Pho"},
		},
	}
	res := &pipeline.ReportResult{
		Report:     pipeline.Build(in, pipeline.Options{Location: time.UTC}),
		DataDir:    "/exports",
		TotalFiles: 2,
	}
	return New(Config{HotspotLevel: 13, HotspotLimit: 5}, res)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, testService(t).Handler(), "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestReportKeepsYearOrder(t *testing.T) {
	rec := get(t, testService(t).Handler(), "/v1/report")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	life := strings.Index(body, `"Lifetime"`)
	y24 := strings.Index(body, `"2024"`)
	y23 := strings.Index(body, `"2023"`)
	if life < 0 || !(life < y24 && y24 < y23) {
		t.Errorf("years out of order in %s", body)
	}
}

func TestYears(t *testing.T) {
	rec := get(t, testService(t).Handler(), "/v1/years")
	var labels []string
	if err := json.Unmarshal(rec.Body.Bytes(), &labels); err != nil {
		t.Fatal(err)
	}
	if strings.Join(labels, ",") != "Lifetime,2024,2023" {
		t.Errorf("labels = %v", labels)
	}
}

func TestYear(t *testing.T) {
	h := testService(t).Handler()

	tests := []struct {
		path       string
		wantStatus int
		wantTrips  int
	}{
		{"/v1/years/2023", http.StatusOK, 2},
		{"/v1/years/2024", http.StatusOK, 0},
		{"/v1/years/lifetime", http.StatusOK, 2},
		{"/v1/years/1999", http.StatusNotFound, 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if rec.Code != http.StatusOK {
				if !strings.Contains(rec.Body.String(), "available") {
					t.Errorf("404 body = %s", rec.Body.String())
				}
				return
			}
			var ys model.YearSummary
			if err := json.Unmarshal(rec.Body.Bytes(), &ys); err != nil {
				t.Fatal(err)
			}
			if ys.Trips.TotalTrips != tt.wantTrips {
				t.Errorf("TotalTrips = %d, want %d", ys.Trips.TotalTrips, tt.wantTrips)
			}
		})
	}
}

func TestHotspots(t *testing.T) {
	h := testService(t).Handler()

	rec := get(t, h, "/v1/years/lifetime/hotspots")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp HotspotResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Year != model.LifetimeLabel || resp.Kind != "pickup" || resp.Level != 13 {
		t.Errorf("resp = %+v", resp)
	}
	if len(resp.Hotspots) != 1 || resp.Hotspots[0].Count != 2 {
		t.Errorf("hotspots = %+v, want one cell with 2 pickups", resp.Hotspots)
	}

	rec = get(t, h, "/v1/years/2023/hotspots?kind=dropoff&limit=1")
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Hotspots) != 1 || resp.Hotspots[0].Count != 1 {
		t.Errorf("dropoff hotspots = %+v", resp.Hotspots)
	}

	for _, bad := range []string{"/v1/years/2023/hotspots?kind=midway", "/v1/years/2023/hotspots?limit=0"} {
		if rec := get(t, h, bad); rec.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", bad, rec.Code)
		}
	}
}

func TestStatusCountsRequests(t *testing.T) {
	h := testService(t).Handler()
	get(t, h, "/healthz")
	get(t, h, "/healthz")

	var st Status
	rec := get(t, h, "/v1/status")
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.Requests != 2 {
		t.Errorf("Requests = %d, want 2 (status request counted after it is served)", st.Requests)
	}
	if st.DataDir != "/exports" || st.Files != 2 || len(st.Years) != 3 {
		t.Errorf("status = %+v", st)
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	s := testService(t)
	s.cfg.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
