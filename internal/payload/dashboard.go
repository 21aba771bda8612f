package payload

type StatsResponse struct {
	Name       string `json:"name"`
	TotalItems int64  `json:"totalItems"`
	DirtyItems int64  `json:"dirtyItems"`
	IsNewUser  bool   `json:"isNewUser"`
}
