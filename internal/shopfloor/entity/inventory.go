package entity

// InventoryItem 库存视图行：Part 与 StockRow 按SKU联结的派生结果，
// 不落盘，每次加载重新计算。AvailableQty 永远现算，不信任输入。
// ReorderPoint/Supplier 仅 main_inventory 源提供，派生路径为空。
type InventoryItem struct {
	SKU          string   `json:"sku"`
	Name         string   `json:"name"`
	UOM          string   `json:"uom"`
	OnHandQty    float64  `json:"on_hand_qty"`
	ReservedQty  float64  `json:"reserved_qty"`
	AvailableQty float64  `json:"available_qty"`
	ReorderPoint *float64 `json:"reorder_point,omitempty"`
	Supplier     string   `json:"supplier,omitempty"`
}
