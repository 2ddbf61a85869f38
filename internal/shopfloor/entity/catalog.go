package entity

// Assembly 可生产的成品（面板类型）
type Assembly struct {
	AssemblySKU string `json:"assembly_sku"`
	Name        string `json:"name"`
	UOM         string `json:"uom"`
}

// Part 可采购/可入库的零部件
type Part struct {
	PartSKU string `json:"part_sku"`
	Name    string `json:"name"`
	UOM     string `json:"uom"`
}

// BomItem BOM行：父装配每生产1单位消耗的组件用量。
// ScrapRate/YieldPct/IsPhantom 随数据加载，但当前不参与消耗计算，
// 后续扩展时再接入，避免悄悄改变扣减行为。
type BomItem struct {
	ParentAssemblySKU string  `json:"parent_assembly_sku"`
	ComponentSKU      string  `json:"component_sku"`
	QtyPer            float64 `json:"qty_per"`
	ScrapRate         float64 `json:"scrap_rate"`
	YieldPct          float64 `json:"yield_pct"`
	IsPhantom         bool    `json:"is_phantom"`
}

// StockRow 某SKU的台账状态。更新后恒有 OnHandQty >= 0。
type StockRow struct {
	SKU         string  `json:"sku"`
	OnHandQty   float64 `json:"on_hand_qty"`
	ReservedQty float64 `json:"reserved_qty"`
}

// DataSnapshot 某一时刻全部数据源的内存快照。
// BuildHistory 来源可选，缺失时为空；Inventory 由 parts+stock 派生。
type DataSnapshot struct {
	Assemblies   []Assembly           `json:"assemblies"`
	Parts        []Part               `json:"parts"`
	BomItems     []BomItem            `json:"bom_items"`
	Stock        []StockRow           `json:"stock"`
	BuildHistory []BuildHistoryRecord `json:"build_history"`
	Inventory    []InventoryItem      `json:"inventory"`
}
