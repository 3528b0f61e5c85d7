package domain

// ThreatReport is one point of the live threats map: a city and the number
// of incidents of a given kind reported there.
type ThreatReport struct {
	ID    int64  `json:"id"`
	City  string `json:"city"`
	Kind  string `json:"kind"`
	Count int    `json:"count"`
	// Lat and Left position the point on the map, in percent.
	Lat  int `json:"lat"`
	Left int `json:"left"`
}
