package schemas

// ReportRow is the per-category status breakdown. A category without assets
// still yields a fully zeroed row.
type ReportRow struct {
	CategoryID   string `json:"categoryId" gorm:"column:category_id"`
	CategoryName string `json:"categoryName" gorm:"column:category_name"`
	Total        int    `json:"total" gorm:"column:total"`
	Assigned     int    `json:"assigned" gorm:"column:assigned"`
	Available    int    `json:"available" gorm:"column:available"`
	NotAvailable int    `json:"notAvailable" gorm:"column:not_available"`
	Waiting      int    `json:"waiting" gorm:"column:waiting"`
	Recycled     int    `json:"recycled" gorm:"column:recycled"`
}

// ReportFilter is the paged/sortable report request.
type ReportFilter struct {
	Page    int
	Size    int
	SortKey string
	SortDir string
}
