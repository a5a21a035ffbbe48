package requests

type Scan struct {
	TargetCount int `json:"target_count" validate:"required,min=1,max=10000"`
	SearchLimit int `json:"search_limit" validate:"min=0"`
}
