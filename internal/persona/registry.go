package persona

// The static registry. Each persona reflects a distinct procurement
// concern; keyword lists are curated, not generated. Remote records with
// the same ID override these at runtime (see internal/rules).
var registry = []Persona{
	{
		PersonaID:      "facility_manager",
		JobTitle:       "Facility Manager",
		DecisionLogic:  []string{"cost", "maintenance", "warranty", "lifecycle"},
		ScrapeKeywords: []string{"total cost of ownership", "maintenance schedule", "warranty years", "cleaning cost", "replacement cycle", "energy savings", "lifecycle cost", "durability rating"},
		IgnoreKeywords: []string{"eco-friendly", "best in class", "world-class", "award-winning"},
		OutputSchema: map[string]FieldSpec{
			"cost_signals":             {Type: "list", Description: "TCO and operating cost mentions", Required: true},
			"maintenance_requirements": {Type: "list", Description: "cleaning and upkeep requirements", Required: true},
			"warranty_terms":           {Type: "list", Description: "warranty duration and conditions", Required: false},
			"lifecycle_notes":          {Type: "list", Description: "replacement cycle and durability claims", Required: false},
		},
	},
	{
		PersonaID:      "project_manager",
		JobTitle:       "Project Manager",
		DecisionLogic:  []string{"lead", "installation", "delivery", "schedule"},
		ScrapeKeywords: []string{"lead time", "installation time", "delivery window", "project timeline", "site logistics", "installation crew", "downtime"},
		IgnoreKeywords: []string{"industry leading", "cutting edge", "revolutionary"},
		OutputSchema: map[string]FieldSpec{
			"lead_time_signals":         {Type: "list", Description: "quoted lead times and delivery windows", Required: true},
			"installation_requirements": {Type: "list", Description: "crew, equipment, and access needs", Required: true},
			"delivery_terms":            {Type: "list", Description: "shipping and staging conditions", Required: false},
			"schedule_risks":            {Type: "list", Description: "downtime and sequencing constraints", Required: false},
		},
	},
	{
		PersonaID:      "quantity_surveyor",
		JobTitle:       "Quantity Surveyor",
		DecisionLogic:  []string{"cost", "rate", "payback", "roi"},
		ScrapeKeywords: []string{"cost per sq ft", "price per unit", "payback period", "roi", "bill of quantities", "rate analysis", "unit rate"},
		IgnoreKeywords: []string{"unbeatable value", "limited time offer", "flash sale"},
		OutputSchema: map[string]FieldSpec{
			"cost_breakdown":   {Type: "list", Description: "per-unit and per-area pricing", Required: true},
			"rate_comparisons": {Type: "list", Description: "unit rate and BoQ references", Required: false},
			"payback_analysis": {Type: "list", Description: "payback period claims", Required: false},
			"roi_signals":      {Type: "list", Description: "return-on-investment statements", Required: true},
		},
	},
	{
		PersonaID:      "flooring_subcontractor",
		JobTitle:       "Flooring Subcontractor",
		DecisionLogic:  []string{"moisture", "subfloor", "adhesive", "technical"},
		ScrapeKeywords: []string{"moisture tolerance", "subfloor preparation", "adhesive requirements", "curing time", "slab moisture", "technical data sheet", "installation spec"},
		IgnoreKeywords: []string{"game changing", "next generation"},
		OutputSchema: map[string]FieldSpec{
			"moisture_limits":       {Type: "list", Description: "RH and moisture tolerance thresholds", Required: true},
			"subfloor_requirements": {Type: "list", Description: "substrate prep requirements", Required: true},
			"adhesive_specs":        {Type: "list", Description: "adhesive type and coverage", Required: false},
			"technical_notes":       {Type: "list", Description: "data sheet and spec references", Required: false},
		},
	},
	{
		PersonaID:      "architect",
		JobTitle:       "Architect",
		DecisionLogic:  []string{"leed", "epd", "compliance", "credits"},
		ScrapeKeywords: []string{"leed credits", "epd", "hpd", "declare label", "embodied carbon", "recycled content", "health product declaration"},
		IgnoreKeywords: []string{"world-class design", "award-winning architects", "inspiring spaces"},
		OutputSchema: map[string]FieldSpec{
			"leed_signals":          {Type: "list", Description: "LEED credit contributions", Required: true},
			"epd_availability":      {Type: "list", Description: "EPD and HPD document mentions", Required: true},
			"compliance_notes":      {Type: "list", Description: "code and standard compliance claims", Required: false},
			"material_transparency": {Type: "list", Description: "ingredient and carbon disclosures", Required: false},
		},
	},
	{
		PersonaID:      "sustainability_consultant",
		JobTitle:       "Sustainability Consultant",
		DecisionLogic:  []string{"verification", "documentation", "certification", "carbon"},
		ScrapeKeywords: []string{"third party verified", "chain of custody", "iso 14001", "carbon footprint", "science based targets", "verification body", "certification scope"},
		IgnoreKeywords: []string{"greenest choice", "planet friendly"},
		OutputSchema: map[string]FieldSpec{
			"verification_status":   {Type: "list", Description: "third-party verification claims", Required: true},
			"documentation_links":   {Type: "list", Description: "published documentation references", Required: true},
			"certification_details": {Type: "list", Description: "certificate scope and issuer", Required: false},
			"carbon_data":           {Type: "list", Description: "footprint and target disclosures", Required: false},
		},
	},
	{
		PersonaID:      "procurement_director",
		JobTitle:       "Procurement Director",
		DecisionLogic:  []string{"risk", "liability", "supply", "insurance"},
		ScrapeKeywords: []string{"supply chain risk", "liability coverage", "insurance certificate", "force majeure", "financial stability", "single source", "recall history"},
		IgnoreKeywords: []string{"trusted by thousands", "number one supplier"},
		OutputSchema: map[string]FieldSpec{
			"risk_factors":       {Type: "list", Description: "supply and sourcing risk mentions", Required: true},
			"liability_terms":    {Type: "list", Description: "liability and indemnity language", Required: true},
			"supply_assurance":   {Type: "list", Description: "continuity and redundancy claims", Required: false},
			"insurance_coverage": {Type: "list", Description: "insurance and bonding details", Required: false},
		},
	},
}

// ByID returns the static persona for id, or false if the registry has no
// such entry.
func ByID(id string) (Persona, bool) {
	for _, p := range registry {
		if p.PersonaID == id {
			return p, true
		}
	}
	return Persona{}, false
}

// All returns a copy of the static registry.
func All() []Persona {
	out := make([]Persona, len(registry))
	copy(out, registry)
	return out
}
