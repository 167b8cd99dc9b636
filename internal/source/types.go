package source

import "github.com/theirongolddev/ridewrap/internal/model"

// Kind classifies an export file by what it holds.
type Kind int

// Export file kinds recognised by ScanDir.
const (
	KindUnknown Kind = iota
	KindTrips
	KindOrders
	KindProfile
	KindRatings
)

func (k Kind) String() string {
	switch k {
	case KindTrips:
		return "trips"
	case KindOrders:
		return "orders"
	case KindProfile:
		return "profile"
	case KindRatings:
		return "ratings"
	}
	return "unknown"
}

// DiscoveredFile is a CSV file found during directory scanning.
type DiscoveredFile struct {
	Path      string
	Kind      Kind
	SizeBytes int64
	MtimeNs   int64
}

// ParseResult holds the output of decoding a single CSV file.
type ParseResult struct {
	File        DiscoveredFile
	Records     []model.Record
	ParseErrors int
	Err         error
}
