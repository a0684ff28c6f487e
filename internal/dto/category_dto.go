package dto

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateSubCategoryRequest struct {
	Name       string `json:"name" binding:"required"`
	CategoryID string `json:"categoryId" binding:"required,uuid"`
}
