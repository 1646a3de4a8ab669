package apimodels

const (
	StatusSuccess = "success"
	StatusFail    = "fail"

	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type Response struct {
	Status  string      `json:"status"`            // success/fail
	Message string      `json:"message,omitempty"` // текст ошибки
	Data    interface{} `json:"data,omitempty"`
}

type ScrollerResponse struct {
	Response
	RowCount int64 `json:"row_count"` // всего записей по фильтру
}

func NewError(message string) Response {
	return Response{
		Status:  StatusFail,
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: StatusSuccess,
		Data:   data,
	}
}

func NewScrollerResponse(data interface{}, rowCount int64) ScrollerResponse {
	return ScrollerResponse{
		Response: NewResponse(data),
		RowCount: rowCount,
	}
}

type Pagination struct {
	Limit int `json:"limit"` // Записей на странице, не больше 100
	Page  int `json:"page"`  // Страница с 1
}

// GetOffsetLimit некорректные значения заменяются на первую страницу и лимит по умолчанию
func (r Pagination) GetOffsetLimit() (offset, limit int) {
	page := max(r.Page, 1)
	limit = r.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	limit = min(limit, MaxPageLimit)
	return (page - 1) * limit, limit
}
