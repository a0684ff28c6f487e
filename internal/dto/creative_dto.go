package dto

import "mime/multipart"

type CreateCreativeActivityRequest struct {
	CategoryID    string  `form:"categoryId" binding:"required,uuid"`
	SubCategoryID string  `form:"subCategoryId" binding:"required,uuid"`
	Name          string  `form:"name" binding:"required"`
	District      string  `form:"district" binding:"required"`
	Amphoe        string  `form:"amphoe" binding:"required"`
	Province      string  `form:"province" binding:"required"`
	Type          string  `form:"type" binding:"required"`
	Village       *string `form:"village"`
	Zipcode       *int    `form:"zipcode"`
	DistrictCode  *int    `form:"district_code"`
	AmphoeCode    *int    `form:"amphoe_code"`
	ProvinceCode  *int    `form:"province_code"`
	Coordinator   *string `form:"coordinator"`
	Phone         *string `form:"phone"`
	Description   string  `form:"description" binding:"required"`
	Summary       string  `form:"summary" binding:"required"`
	Results       *string `form:"results"`
	StartYear     int     `form:"startYear" binding:"required"`
	VideoLink     *string `form:"videoLink"`

	Images     []*multipart.FileHeader `form:"images"`
	ReportFile *multipart.FileHeader   `form:"reportFile"`
}

type UpdateCreativeActivityRequest struct {
	CategoryID    *string `form:"categoryId" binding:"omitempty,uuid"`
	SubCategoryID *string `form:"subCategoryId" binding:"omitempty,uuid"`
	Name          *string `form:"name"`
	District      *string `form:"district"`
	Amphoe        *string `form:"amphoe"`
	Province      *string `form:"province"`
	Type          *string `form:"type"`
	Village       *string `form:"village"`
	Zipcode       *int    `form:"zipcode"`
	DistrictCode  *int    `form:"district_code"`
	AmphoeCode    *int    `form:"amphoe_code"`
	ProvinceCode  *int    `form:"province_code"`
	Coordinator   *string `form:"coordinator"`
	Phone         *string `form:"phone"`
	Description   *string `form:"description"`
	Summary       *string `form:"summary"`
	Results       *string `form:"results"`
	StartYear     *int    `form:"startYear"`
	VideoLink     *string `form:"videoLink"`

	Images           []*multipart.FileHeader `form:"images"`
	DeletedImageIDs  []string                `form:"deletedImageIds"`
	ReportFile       *multipart.FileHeader   `form:"reportFile"`
	RemoveReportFile bool                    `form:"removeReportFile"`
}
