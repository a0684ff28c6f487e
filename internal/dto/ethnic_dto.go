package dto

import "mime/multipart"

type CreateEthnicGroupRequest struct {
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
	History             string  `form:"history" binding:"required"`
	ActivityName        string  `form:"activityName" binding:"required"`
	ActivityOrigin      string  `form:"activityOrigin" binding:"required"`
	ActivityDetails     string  `form:"activityDetails" binding:"required"`
	AlcoholFreeApproach string  `form:"alcoholFreeApproach" binding:"required"`
	Results             *string `form:"results"`
	StartYear           int     `form:"startYear" binding:"required"`
	VideoLink           *string `form:"videoLink"`

	Images []*multipart.FileHeader `form:"images"`
	File   *multipart.FileHeader   `form:"file"`
}

type UpdateEthnicGroupRequest struct {
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
	History             *string `form:"history"`
	ActivityName        *string `form:"activityName"`
	ActivityOrigin      *string `form:"activityOrigin"`
	ActivityDetails     *string `form:"activityDetails"`
	AlcoholFreeApproach *string `form:"alcoholFreeApproach"`
	Results             *string `form:"results"`
	StartYear           *int    `form:"startYear"`
	VideoLink           *string `form:"videoLink"`

	Images          []*multipart.FileHeader `form:"images"`
	DeletedImageIDs []string                `form:"deletedImageIds"`
	File            *multipart.FileHeader   `form:"file"`
	RemoveFile      bool                    `form:"removeFile"`
}
