package catalog

// CostItem is one line of a per-acre reference cost structure.
type CostItem struct {
	Item   string  `json:"item"`
	Amount float64 `json:"amount"`
}

// CostCategory groups cost items, e.g. land preparation or labor.
type CostCategory struct {
	Name  string     `json:"name"`
	Items []CostItem `json:"items"`
}

// Total sums the category's items.
func (c CostCategory) Total() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += it.Amount
	}
	return sum
}

// The seeds category is crop specific and resolved by CostStructure.
const seedsCategory = "seeds"

var seedCosts = map[string]float64{
	"wheat":      800,
	"rice":       1200,
	"maize":      600,
	"cotton":     1500,
	"sugarcane":  3000,
	"pulses":     400,
	"vegetables": 2000,
}

var costCategories = [...]CostCategory{
	{Name: "land_preparation", Items: []CostItem{
		{"plowing", 2000}, {"harrowing", 1500}, {"leveling", 1000}, {"seed_bed", 500},
	}},
	{Name: seedsCategory},
	{Name: "fertilizers", Items: []CostItem{
		{"npk", 3000}, {"organic", 1500}, {"micronutrients", 500},
	}},
	{Name: "pesticides", Items: []CostItem{
		{"insecticides", 1000}, {"fungicides", 800}, {"herbicides", 600},
	}},
	{Name: "irrigation", Items: []CostItem{
		{"electricity", 2000}, {"diesel", 3000}, {"labor", 1500},
	}},
	{Name: "labor", Items: []CostItem{
		{"sowing", 1000}, {"weeding", 800}, {"harvesting", 2000}, {"threshing", 1500},
	}},
	{Name: "machinery", Items: []CostItem{
		{"tractor", 5000}, {"harvester", 8000}, {"thresher", 3000},
	}},
	{Name: "miscellaneous", Items: []CostItem{
		{"transport", 1000}, {"storage", 500}, {"marketing", 800},
	}},
}

// CostStructure returns the per-acre reference cost structure for a crop key,
// in fixed category order. A crop without a seed entry gets an empty seeds category.
func CostStructure(cropKey string) []CostCategory {
	out := make([]CostCategory, len(costCategories))
	for i, c := range costCategories {
		items := append([]CostItem(nil), c.Items...)
		if c.Name == seedsCategory {
			if amount, ok := seedCosts[cropKey]; ok {
				items = []CostItem{{Item: cropKey, Amount: amount}}
			}
		}
		out[i] = CostCategory{Name: c.Name, Items: items}
	}
	return out
}
