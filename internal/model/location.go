package model

// Location is the geographic block shared by all four content kinds.
// Type holds the Thai region name (e.g. "ภาคเหนือ") and is what the
// dashboard "region" filter matches against.
type Location struct {
	District     string  `gorm:"size:100;not null" json:"district"`
	Amphoe       string  `gorm:"size:100;not null" json:"amphoe"`
	Province     string  `gorm:"size:100;not null;index" json:"province"`
	Type         string  `gorm:"size:100;not null;index" json:"type"`
	Village      *string `gorm:"size:255" json:"village,omitempty"`
	Zipcode      *int    `json:"zipcode,omitempty"`
	DistrictCode *int    `json:"district_code,omitempty"`
	AmphoeCode   *int    `json:"amphoe_code,omitempty"`
	ProvinceCode *int    `json:"province_code,omitempty"`
}
