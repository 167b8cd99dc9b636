// Package model defines the export records ridewrap reads and the report it produces.
package model

import "strings"

// Record is one decoded CSV row: header name -> cell text.
// Missing columns read as "".
type Record map[string]string

// Get returns the first non-empty value among keys. Header matching is
// case-insensitive so exports that change column casing still resolve.
func (r Record) Get(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	for _, k := range keys {
		for name, v := range r {
			if strings.EqualFold(name, k) && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}

// TripRecord is one ride from the trips export. Every field is the raw cell text.
type TripRecord struct {
	Status                 string
	RequestTimeLocal       string
	RequestTimeUTC         string
	FareAmount             string
	ClientUpfrontFareLocal string
	OriginalFareLocal      string
	DistanceMiles          string
	DurationSeconds        string
	City                   string
	ProductType            string
	IsSurged               string
	SurgeMultiplier        string
	IsFareSplit            string
	IsMultiDestination     string
	PickupLat              string
	PickupLng              string
	DropoffLat             string
	DropoffLng             string
}

// OrderLine is one item row from the food-delivery export. Several lines share
// the same RequestTimeLocal + RestaurantName when an order has multiple items.
type OrderLine struct {
	RequestTimeLocal string
	RestaurantName   string
	OrderPrice       string
	ItemName         string
	ItemQuantity     string
}

// TripFromRecord maps a trips CSV row onto a TripRecord, resolving column aliases.
func TripFromRecord(r Record) TripRecord {
	return TripRecord{
		Status:                 r.Get("status"),
		RequestTimeLocal:       r.Get("request_timestamp_local", "request_time_local"),
		RequestTimeUTC:         r.Get("request_timestamp_utc", "request_time_utc", "request_timestamp"),
		FareAmount:             r.Get("fare_amount"),
		ClientUpfrontFareLocal: r.Get("client_upfront_fare_local"),
		OriginalFareLocal:      r.Get("original_fare_local"),
		DistanceMiles:          r.Get("distance_miles", "distance"),
		DurationSeconds:        r.Get("duration_seconds", "trip_duration_seconds"),
		City:                   r.Get("city_name", "city"),
		ProductType:            r.Get("product_type_name"),
		IsSurged:               r.Get("is_surged"),
		SurgeMultiplier:        r.Get("surge_multiplier"),
		IsFareSplit:            r.Get("is_fare_split"),
		IsMultiDestination:     r.Get("is_multidestination"),
		PickupLat:              r.Get("begintrip_lat"),
		PickupLng:              r.Get("begintrip_lng"),
		DropoffLat:             r.Get("dropoff_lat"),
		DropoffLng:             r.Get("dropoff_lng"),
	}
}

// OrderLineFromRecord maps an order-details CSV row onto an OrderLine.
func OrderLineFromRecord(r Record) OrderLine {
	return OrderLine{
		RequestTimeLocal: r.Get("Request_Time_Local"),
		RestaurantName:   r.Get("Restaurant_Name"),
		OrderPrice:       r.Get("Order_Price"),
		ItemName:         r.Get("Item_Name"),
		ItemQuantity:     r.Get("Item_quantity"),
	}
}
