package dto

import "mime/multipart"

type CreateTraditionRequest struct {
	CategoryID          string  `form:"categoryId" binding:"required,uuid"`
	Name                string  `form:"name" binding:"required"`
	District            string  `form:"district" binding:"required"`
	Amphoe              string  `form:"amphoe" binding:"required"`
	Province            string  `form:"province" binding:"required"`
	Type                string  `form:"type" binding:"required"`
	Village             *string `form:"village"`
	Zipcode             *int    `form:"zipcode"`
	DistrictCode        *int    `form:"district_code"`
	AmphoeCode          *int    `form:"amphoe_code"`
	ProvinceCode        *int    `form:"province_code"`
	Coordinator         *string `form:"coordinator"`
	Phone               *string `form:"phone"`
	History             string  `form:"history" binding:"required"`
	AlcoholFreeApproach string  `form:"alcoholFreeApproach" binding:"required"`
	Results             *string `form:"results"`
	StartYear           int     `form:"startYear" binding:"required"`

	Images     []*multipart.FileHeader `form:"images"`
	ReportFile *multipart.FileHeader   `form:"reportFile"`
}

type UpdateTraditionRequest struct {
	CategoryID          *string `form:"categoryId" binding:"omitempty,uuid"`
	Name                *string `form:"name"`
	District            *string `form:"district"`
	Amphoe              *string `form:"amphoe"`
	Province            *string `form:"province"`
	Type                *string `form:"type"`
	Village             *string `form:"village"`
	Zipcode             *int    `form:"zipcode"`
	DistrictCode        *int    `form:"district_code"`
	AmphoeCode          *int    `form:"amphoe_code"`
	ProvinceCode        *int    `form:"province_code"`
	Coordinator         *string `form:"coordinator"`
	Phone               *string `form:"phone"`
	History             *string `form:"history"`
	AlcoholFreeApproach *string `form:"alcoholFreeApproach"`
	Results             *string `form:"results"`
	StartYear           *int    `form:"startYear"`

	Images           []*multipart.FileHeader `form:"images"`
	DeletedImageIDs  []string                `form:"deletedImageIds"`
	ReportFile       *multipart.FileHeader   `form:"reportFile"`
	RemoveReportFile bool                    `form:"removeReportFile"`
}
