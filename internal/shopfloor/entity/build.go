package entity

// BuildHistoryRecord 一次生产记录。写入即不可变，只追加不修改。
// ID 与 Timestamp 在写入时生成，不由调用方提供。
type BuildHistoryRecord struct {
	ID            string  `json:"id"`
	Timestamp     string  `json:"timestamp"` // UTC, RFC3339
	WorkOrder     string  `json:"work_order"`
	SalesOrder    string  `json:"sales_order"`
	Customer      string  `json:"customer"`
	AssemblySKU   string  `json:"assembly_sku"`
	QuantityBuilt float64 `json:"quantity_built"`
	Operator      string  `json:"operator,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// LimitingComponent 限制产量的组件明细
type LimitingComponent struct {
	SKU             string  `json:"sku"`
	Available       float64 `json:"available"`
	ReqPerUnit      float64 `json:"req_per_unit"`
	CandidateBuilds int     `json:"candidate_builds"`
}

// Buildability 在当前库存下某装配的最大整数可建量及其瓶颈组件
type Buildability struct {
	MaxBuildable       int                 `json:"max_buildable"`
	LimitingComponents []LimitingComponent `json:"limiting_components"`
}
