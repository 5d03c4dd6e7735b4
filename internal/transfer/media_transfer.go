package transfer

type CreateMediaRequest struct {
	Title        string `form:"title" validate:"required,max=200"`
	Category     string `form:"category" validate:"required"`
	URL          string `form:"url" validate:"omitempty,url"`
	CollectionID string `form:"collection_id" validate:"omitempty,uuid"`
	Duration     string `form:"duration" validate:"omitempty,numeric"`
	PageCount    string `form:"page_count" validate:"omitempty,number"`
}

type BulkUploadRequest struct {
	Kind           string `form:"kind"`
	Category       string `form:"category" validate:"required"`
	TitlePrefix    string `form:"title_prefix" validate:"max=150"`
	CollectionName string `form:"collection_name" validate:"max=200"`
}

type DiscountUpdateRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Discount    int    `json:"discount"`
	Active      bool   `json:"active"`
}

type ContactRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=200"`
	Phone    string `json:"phone" form:"phone" validate:"required,max=30"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Comments string `json:"comments" form:"comments" validate:"max=5000"`
}
