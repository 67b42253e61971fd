package distributor

import "time"

// Tier thresholds on the overall score.
const (
	tierTop     = 75
	tierGood    = 60
	tierAverage = 40
)

// ComputeScore rolls the analysis signals into four bounded sub-scores.
// Overall is their plain sum: 40 + 20 + 25 + 15 caps at 100.
func ComputeScore(c Compliance, inv Inventory, at time.Time) Score {
	s := Score{GeneratedAt: at}

	// Documentation readiness, 10 per doc family.
	if c.HasLEEDDocs {
		s.Documentation += 10
	}
	if c.HasEPDDocs {
		s.Documentation += 10
	}
	if c.HasHPDDocs {
		s.Documentation += 10
	}
	if c.ThirdPartyVerified {
		s.Documentation += 10
	}

	// Downloadable-asset presence.
	assets := len(c.DocumentLinks) + len(c.DownloadableFiles)
	switch {
	case assets >= 3:
		s.Downloadable = 20
	case assets >= 1:
		s.Downloadable = 10
	}

	// Multi-functional SKU count, bucketed.
	switch n := len(inv.MultiFunctionalSKUs); {
	case n >= 5:
		s.MultiFunctional = 25
	case n >= 3:
		s.MultiFunctional = 18
	case n >= 1:
		s.MultiFunctional = 10
	}

	// Inventory transparency.
	if inv.StockTransparency {
		s.Transparency += 8
	}
	if inv.LeadTimeVisible {
		s.Transparency += 7
	}

	s.Overall = s.Documentation + s.Downloadable + s.MultiFunctional + s.Transparency

	s.Tier = tierFor(s.Overall)
	s.Strengths, s.Weaknesses = narrate(s, c, inv)
	return s
}

func tierFor(overall int) string {
	switch {
	case overall >= tierTop:
		return "top"
	case overall >= tierGood:
		return "good"
	case overall >= tierAverage:
		return "average"
	default:
		return "poor"
	}
}

// narrate turns sub-score thresholds into fixed strength/weakness lines.
func narrate(s Score, c Compliance, inv Inventory) (strengths, weaknesses []string) {
	if s.Documentation >= 30 {
		strengths = append(strengths, "Comprehensive compliance documentation (LEED/EPD/HPD)")
	} else if s.Documentation <= 10 {
		weaknesses = append(weaknesses, "Little or no compliance documentation found")
	}

	if s.Downloadable == 20 {
		strengths = append(strengths, "Certification documents downloadable directly")
	} else if s.Downloadable == 0 {
		weaknesses = append(weaknesses, "No downloadable certification assets")
	}

	if n := len(inv.MultiFunctionalSKUs); n >= 3 {
		strengths = append(strengths, "Strong multi-functional product range")
	} else if n == 0 {
		weaknesses = append(weaknesses, "No multi-functional SKUs detected")
	}

	if s.Transparency == 15 {
		strengths = append(strengths, "Stock and lead-time information published")
	} else if s.Transparency == 0 {
		weaknesses = append(weaknesses, "No stock or lead-time visibility")
	}

	if c.ThirdPartyVerified {
		strengths = append(strengths, "Third-party verification language present")
	}

	return strengths, weaknesses
}

// Summary is the one-line rollup the API returns next to the full record.
func Summary(intel Intelligence) string {
	switch intel.Score.Tier {
	case "top":
		return intel.Distributor.Name + " is a top-tier distributor for sustainable procurement"
	case "good":
		return intel.Distributor.Name + " is a good distributor with minor documentation gaps"
	case "average":
		return intel.Distributor.Name + " is an average distributor; expect manual compliance work"
	default:
		return intel.Distributor.Name + " shows poor compliance and inventory signals"
	}
}
