package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"trip-planner/models"
)

const reportWidth = 60

// PrintPipelineResult writes a terminal report of one planner run
func PrintPipelineResult(w io.Writer, result *models.PipelineResult) {
	border := strings.Repeat("═", reportWidth)
	thin := strings.Repeat("─", reportWidth)

	fmt.Fprintf(w, "\n╔%s╗\n", border)
	fmt.Fprintf(w, "║%s║\n", center("TRIP PLANNER", reportWidth))
	fmt.Fprintf(w, "╚%s╝\n", border)
	fmt.Fprintf(w, "  Request : %s\n", result.RequestID)
	fmt.Fprintf(w, "  Intent  : %s\n", result.Intent)

	if result.Intent != models.IntentPlanning {
		fmt.Fprintf(w, "\n ANSWER\n%s\n%s\n\n", thin, result.Response)
		return
	}

	if req := result.Request; req != nil {
		fmt.Fprintf(w, "\n TRIP\n%s\n", thin)
		fmt.Fprintf(w, "  Destination : %s\n", req.Destination)
		fmt.Fprintf(w, "  Dates       : %s to %s\n", req.CheckInDate(), req.CheckOutDate())
		fmt.Fprintf(w, "  Guests      : %d\n", req.Guests)
		fmt.Fprintf(w, "  Budget      : $%s-$%s (%s)\n", money(req.Budget.Min), money(req.Budget.Max), req.Category)
	}
	if dc := result.Constraints; dc != nil {
		fmt.Fprintf(w, "  Nights      : %d\n", dc.Nights)
		fmt.Fprintf(w, "  Lodging cap : $%d/night\n", dc.NightlyCeiling)
	}

	if b := result.Research; b != nil {
		fmt.Fprintf(w, "\n RESEARCH\n%s\n", thin)
		fmt.Fprintf(w, "  Attractions : %s\n", researchStatus(len(b.Attractions), b.AttractionsError))
		fmt.Fprintf(w, "  Listings    : %s\n", researchStatus(len(b.Listings), b.ListingsError))
	}

	if r := result.Insights; r != nil && r.TotalListings > 0 {
		printInsights(w, r, thin)
	}

	fmt.Fprintf(w, "\n ITINERARY\n%s\n%s\n", thin, result.Itinerary)
	fmt.Fprintf(w, "\n%s\n\n", border)
}

func printInsights(w io.Writer, r *models.InsightReport, thin string) {
	fmt.Fprintf(w, "\n LISTING INSIGHTS\n%s\n", thin)
	fmt.Fprintf(w, "  Listings with price  : %d of %d\n", r.PricedListings, r.TotalListings)
	if r.PricedListings > 0 {
		fmt.Fprintf(w, "  Average price/night  : $%.2f\n", r.AveragePrice)
		fmt.Fprintf(w, "  Price range/night    : $%.2f - $%.2f\n", r.MinPrice, r.MaxPrice)
	}
	if r.Cheapest != nil {
		fmt.Fprintf(w, "  Cheapest             : %s\n", truncate(r.Cheapest.Title, 40))
	}

	if len(r.ListingsByArea) > 0 {
		type areaCount struct {
			area  string
			count int
		}
		var areas []areaCount
		for area, cnt := range r.ListingsByArea {
			areas = append(areas, areaCount{area, cnt})
		}
		sort.Slice(areas, func(i, j int) bool {
			if areas[i].count != areas[j].count {
				return areas[i].count > areas[j].count
			}
			return areas[i].area < areas[j].area
		})
		fmt.Fprintf(w, "\n LISTINGS PER AREA\n%s\n", thin)
		for _, ac := range areas {
			fmt.Fprintf(w, "  %-25s %3d  %s\n", truncate(ac.area, 24)+":", ac.count, strings.Repeat("▓", ac.count))
		}
	}

	if len(r.TopRated) > 0 {
		fmt.Fprintf(w, "\n TOP %d RATED\n%s\n", len(r.TopRated), thin)
		for i, l := range r.TopRated {
			fmt.Fprintf(w, "  %d. %-40s %s (%s)\n", i+1, truncate(l.Title, 40), l.Rating, l.Reviews)
		}
	}
}

func researchStatus(n int, failure string) string {
	if failure != "" {
		return "unavailable (" + failure + ")"
	}
	return fmt.Sprintf("%d found", n)
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
