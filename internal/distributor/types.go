// Package distributor scores supplier-adjacent companies on how easy
// their compliance documentation and inventory signals make sustainable
// procurement. Fixed heuristics over the same fetch/parse primitives the
// persona scraper uses.
package distributor

import "time"

// Distributor categories seen in the marketplace registry.
const (
	TypeBuildingMaterials = "building_materials"
	TypeSpecialtyGreen    = "specialty_green"
	TypeFlooring          = "flooring"
	TypeGeneralSupply     = "general_supply"
)

type Distributor struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Website  string   `json:"website"`
	Type     string   `json:"type,omitempty"`
	Coverage []string `json:"coverage,omitempty"`
	Contact  string   `json:"contact,omitempty"`
}

// Compliance captures documentation-availability signals from the site.
type Compliance struct {
	HasLEEDDocs        bool     `json:"hasLeedDocs"`
	HasEPDDocs         bool     `json:"hasEpdDocs"`
	HasHPDDocs         bool     `json:"hasHpdDocs"`
	ThirdPartyVerified bool     `json:"thirdPartyVerified"`
	DocumentLinks      []string `json:"documentLinks"`
	DownloadableFiles  []string `json:"downloadableFiles"`
	EaseScore          int      `json:"easeScore"` // 0-100
}

// SKU is a detected multi-functional product.
type SKU struct {
	Name           string   `json:"name"`
	ReplacedTrades []string `json:"replacedTrades"`
	Snippet        string   `json:"snippet"`
}

type Inventory struct {
	MultiFunctionalSKUs []SKU `json:"multiFunctionalSkus"`
	StockTransparency   bool  `json:"stockTransparency"`
	LeadTimeVisible     bool  `json:"leadTimeVisible"`
}

// Score is the weighted rollup. Overall is the unweighted sum of the four
// bounded sub-scores and therefore always lies in [0,100].
type Score struct {
	Overall         int       `json:"overall"`
	Documentation   int       `json:"documentation"`   // 0-40
	Downloadable    int       `json:"downloadable"`    // 0-20
	MultiFunctional int       `json:"multiFunctional"` // 0-25
	Transparency    int       `json:"transparency"`    // 0-15
	Tier            string    `json:"tier"`            // top | good | average | poor
	Strengths       []string  `json:"strengths"`
	Weaknesses      []string  `json:"weaknesses"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// Intelligence is the full scoring result for one distributor.
type Intelligence struct {
	Distributor Distributor `json:"distributor"`
	Compliance  Compliance  `json:"compliance"`
	Inventory   Inventory   `json:"inventory"`
	Score       Score       `json:"score"`
	AnalyzedAt  time.Time   `json:"analyzedAt"`
}
