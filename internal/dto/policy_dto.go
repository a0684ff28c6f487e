package dto

import "mime/multipart"

type CreatePublicPolicyRequest struct {
	Name         string  `form:"name" binding:"required"`
	SigningDate  string  `form:"signingDate" binding:"required"`
	Level        string  `form:"level" binding:"required,oneof=NATIONAL HEALTH_REGION PROVINCIAL DISTRICT SUB_DISTRICT VILLAGE"`
	District     string  `form:"district" binding:"required"`
	Amphoe       string  `form:"amphoe" binding:"required"`
	Province     string  `form:"province" binding:"required"`
	Type         string  `form:"type" binding:"required"`
	Village      *string `form:"village"`
	Zipcode      *int    `form:"zipcode"`
	DistrictCode *int    `form:"district_code"`
	AmphoeCode   *int    `form:"amphoe_code"`
	ProvinceCode *int    `form:"province_code"`
	Content      string  `form:"content" binding:"required"`
	Summary      string  `form:"summary" binding:"required"`
	Results      *string `form:"results"`
	VideoLink    *string `form:"videoLink"`

	Images     []*multipart.FileHeader `form:"images"`
	PolicyFile *multipart.FileHeader   `form:"policyFile"`
}

type UpdatePublicPolicyRequest struct {
	Name         *string `form:"name"`
	SigningDate  *string `form:"signingDate"`
	Level        *string `form:"level" binding:"omitempty,oneof=NATIONAL HEALTH_REGION PROVINCIAL DISTRICT SUB_DISTRICT VILLAGE"`
	District     *string `form:"district"`
	Amphoe       *string `form:"amphoe"`
	Province     *string `form:"province"`
	Type         *string `form:"type"`
	Village      *string `form:"village"`
	Zipcode      *int    `form:"zipcode"`
	DistrictCode *int    `form:"district_code"`
	AmphoeCode   *int    `form:"amphoe_code"`
	ProvinceCode *int    `form:"province_code"`
	Content      *string `form:"content"`
	Summary      *string `form:"summary"`
	Results      *string `form:"results"`
	VideoLink    *string `form:"videoLink"`

	Images           []*multipart.FileHeader `form:"images"`
	DeletedImageIDs  []string                `form:"deletedImageIds"`
	PolicyFile       *multipart.FileHeader   `form:"policyFile"`
	RemovePolicyFile bool                    `form:"removePolicyFile"`
}
