package service

import (
	"math"
	"sort"

	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/entity"
)

// IndexBomByParent 构建 父装配SKU -> BOM行 的查找表
func IndexBomByParent(bom []entity.BomItem) map[string][]entity.BomItem {
	index := make(map[string][]entity.BomItem)
	for _, row := range bom {
		index[row.ParentAssemblySKU] = append(index[row.ParentAssemblySKU], row)
	}
	return index
}

// RequirementsPerUnit 汇总生产1单位装配的逐组件用量。
// 仅展开一层，不递归进入子装配的BOM；同一组件的多行用量相加。
// scrap_rate/yield_pct 刻意不参与计算，按字面用量展开。
func RequirementsPerUnit(bom []entity.BomItem, assemblySKU string) map[string]float64 {
	req := make(map[string]float64)
	for _, row := range bom {
		if row.ParentAssemblySKU != assemblySKU {
			continue
		}
		req[row.ComponentSKU] += row.QtyPer
	}
	return req
}

// ExplodeRequirements 按生产数量展开为逐组件总需求。
// quantityBuilt 不做校验，0或负数照常计算，是否拦截由调用方决定。
func ExplodeRequirements(bom []entity.BomItem, assemblySKU string, quantityBuilt float64) map[string]float64 {
	need := make(map[string]float64)
	for sku, perUnit := range RequirementsPerUnit(bom, assemblySKU) {
		need[sku] = perUnit * quantityBuilt
	}
	return need
}

// ApplyConsumption 将需求扣减到库存行上，on_hand 向下钳制到0，
// 不会变负也不报错；reserved 不动。需求中没有对应库存行的组件
// 静默跳过，不新建库存记录。
func ApplyConsumption(stock []entity.StockRow, need map[string]float64) {
	for i := range stock {
		total, ok := need[stock[i].SKU]
		if !ok {
			continue
		}
		stock[i].OnHandQty = math.Max(0, stock[i].OnHandQty-total)
	}
}

// ComputeBuildability 限制性组件分析：以各组件可用量除以单件用量向下取整，
// 取最小值为最大整数可建量，并返回所有达到该瓶颈的组件。
func ComputeBuildability(reqPerUnit map[string]float64, stock []entity.StockRow, respectReservations bool) *entity.Buildability {
	avail := make(map[string]float64, len(stock))
	for _, s := range stock {
		a := s.OnHandQty
		if respectReservations {
			a -= s.ReservedQty
		}
		avail[s.SKU] = math.Max(0, a)
	}

	maxBuildable := math.MaxInt
	var candidates []entity.LimitingComponent
	for sku, req := range reqPerUnit {
		if req <= 0 {
			continue
		}
		a := avail[sku]
		candidate := int(math.Floor(a / req)) // 只算整件
		candidates = append(candidates, entity.LimitingComponent{
			SKU:             sku,
			Available:       a,
			ReqPerUnit:      req,
			CandidateBuilds: candidate,
		})
		if candidate < maxBuildable {
			maxBuildable = candidate
		}
	}

	if maxBuildable == math.MaxInt {
		maxBuildable = 0
	}
	// map遍历顺序不定，按SKU排序保证输出稳定
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].SKU < candidates[j].SKU })
	limiting := make([]entity.LimitingComponent, 0)
	for _, c := range candidates {
		if c.CandidateBuilds == maxBuildable {
			limiting = append(limiting, c)
		}
	}
	return &entity.Buildability{MaxBuildable: maxBuildable, LimitingComponents: limiting}
}
