package dto

type Pagination struct {
	CurrentPage  int  `json:"currentpage"`
	PageSize     int  `json:"pagesize"`
	TotalRecords int  `json:"totalrecords"`
	TotalPages   int  `json:"totalpages"`
	HasNextPage  bool `json:"hasnextpage"`
	HasPrevPage  bool `json:"haspreviouspage"`
}

type PaginatedResponse[T any] struct {
	Pagination Pagination `json:"pagination"`
	Data       []T        `json:"data"`
}
