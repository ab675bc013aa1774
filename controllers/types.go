package controllers

import "github.com/ink-point/api-go/utils"

type StandardResponse struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data,omitempty"`
	Meta       interface{}     `json:"meta,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Message    string          `json:"message,omitempty"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

func paginationMeta(page utils.Page) *PaginationMeta {
	return &PaginationMeta{
		CurrentPage: page.Number,
		PageSize:    page.Size,
		TotalItems:  page.TotalItems,
		TotalPages:  page.TotalPages,
	}
}
