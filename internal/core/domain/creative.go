package domain

// CreativeType is the rendering format of a creative.
type CreativeType int

const (
	CreativeTypeBanner CreativeType = iota + 1
	CreativeTypeNative
	CreativeTypeVideo
	CreativeTypeInterstitial
)

// Creative represents an individual advertisement belonging to exactly one
// campaign. SlotIDs restricts the creative to the listed ad slots; an empty
// list means the creative may serve on any slot.
type Creative struct {
	ID           int64
	CampaignID   int64
	Title        string
	Description  string
	ImageURL     string
	VideoURL     string
	LandingURL   string
	Type         CreativeType
	Width        int
	Height       int
	Duration     int // in seconds, video only
	SlotIDs      []string
	Status       Status
	QualityScore int
}
