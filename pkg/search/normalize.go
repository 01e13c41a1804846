package search

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/toole-brendan/hrx-sub003/pkg/client"
)

// Per-category scoring. Property hits are scored per matched field; the
// server-filtered categories get a flat weight because the client cannot
// recompute server ranking. The flat weights encode the intended baseline
// priority: property field matches > people > catalog > transfers.
const (
	scorePropertyName   = 0.4
	scorePropertySerial = 0.3
	scorePropertyNSN    = 0.2
	scorePropertyDesc   = 0.1

	scorePerson   = 0.8
	scoreCatalog  = 0.7
	scoreTransfer = 0.6
)

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// scoreProperty decides inclusion and relevance for one property record.
// The score is the sum of the weights of every matching field, so a record
// matching on name and serial outranks one matching on name alone.
func scoreProperty(query string, p client.Property) (float64, bool) {
	score := 0.0
	if containsFold(p.Name, query) {
		score += scorePropertyName
	}
	if containsFold(p.SerialNumber, query) {
		score += scorePropertySerial
	}
	if containsFold(deref(p.NSN), query) || containsFold(deref(p.LIN), query) {
		score += scorePropertyNSN
	}
	if containsFold(deref(p.Description), query) {
		score += scorePropertyDesc
	}
	return score, score > 0
}

func normalizeProperties(query string, records []client.Property) []Result {
	results := make([]Result, 0, len(records))
	for _, p := range records {
		score, ok := scoreProperty(query, p)
		if !ok {
			continue
		}

		var meta []Field
		if nsn := deref(p.NSN); nsn != "" {
			meta = append(meta, Field{Icon: "nsn", Value: nsn})
		}
		if p.CurrentStatus != "" {
			meta = append(meta, Field{Icon: "status", Value: p.CurrentStatus})
		}
		if loc := deref(p.Location); loc != "" {
			meta = append(meta, Field{Icon: "location", Value: loc})
		}

		results = append(results, Result{
			ID:       uuid.NewString(),
			Category: CategoryProperty,
			Title:    p.Name,
			Subtitle: "SN: " + p.SerialNumber,
			Metadata: meta,
			Score:    score,
		})
	}
	return results
}

// normalizeUsers trusts the server-side people search: every returned record
// is included with the fixed person weight.
func normalizeUsers(records []client.User) []Result {
	results := make([]Result, 0, len(records))
	for _, u := range records {
		var meta []Field
		if u.Unit != "" {
			meta = append(meta, Field{Icon: "unit", Value: u.Unit})
		}
		if u.Email != "" {
			meta = append(meta, Field{Icon: "email", Value: u.Email})
		}

		results = append(results, Result{
			ID:       uuid.NewString(),
			Category: CategoryPerson,
			Title:    u.FullName(),
			Subtitle: u.Unit,
			Metadata: meta,
			Score:    scorePerson,
		})
	}
	return results
}

// transferMatches reports whether a transfer's status text or numeric id
// contains the query.
func transferMatches(query string, tr client.Transfer) bool {
	if containsFold(tr.Status, query) {
		return true
	}
	return strings.Contains(strconv.FormatUint(uint64(tr.ID), 10), query)
}

func normalizeTransfers(query string, records []client.Transfer) []Result {
	results := make([]Result, 0, len(records))
	for _, tr := range records {
		if !transferMatches(query, tr) {
			continue
		}

		meta := []Field{
			{Icon: "status", Value: tr.Status},
		}
		if tr.TransferType != "" {
			meta = append(meta, Field{Icon: "type", Value: tr.TransferType})
		}
		if notes := deref(tr.Notes); notes != "" {
			meta = append(meta, Field{Icon: "notes", Value: notes})
		}

		results = append(results, Result{
			ID:       uuid.NewString(),
			Category: CategoryTransfer,
			Title:    "Transfer #" + strconv.FormatUint(uint64(tr.ID), 10),
			Subtitle: tr.Status,
			Metadata: meta,
			Score:    scoreTransfer,
		})
	}
	return results
}

// normalizeCatalog trusts the server-side universal search: every returned
// record is included with the fixed catalog weight.
func normalizeCatalog(records []client.CatalogItem) []Result {
	results := make([]Result, 0, len(records))
	for _, item := range records {
		var meta []Field
		if item.LIN != "" {
			meta = append(meta, Field{Icon: "lin", Value: item.LIN})
		}
		if item.Manufacturer != "" {
			meta = append(meta, Field{Icon: "manufacturer", Value: item.Manufacturer})
		}
		if item.PartNumber != "" {
			meta = append(meta, Field{Icon: "part", Value: item.PartNumber})
		}

		results = append(results, Result{
			ID:       uuid.NewString(),
			Category: CategoryReference,
			Title:    item.Nomenclature,
			Subtitle: item.NSN,
			Metadata: meta,
			Score:    scoreCatalog,
		})
	}
	return results
}
