package normalize

import (
	"fmt"
	"strings"
)

// Extraction runs arrive with inconsistently shaped values: a logical field
// may be a string, a number, or a nested object wrapping the real value
// under "value" or "content". Unwrap peels those shapes recursively and
// renders the innermost scalar as a string.
func Unwrap(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case float64:
		return trimFloat(val), true
	case float32:
		return trimFloat(float64(val)), true
	case int:
		return fmt.Sprintf("%d", val), true
	case int64:
		return fmt.Sprintf("%d", val), true
	case bool:
		return fmt.Sprintf("%t", val), true
	case map[string]interface{}:
		if inner, ok := val["value"]; ok {
			return Unwrap(inner)
		}
		if inner, ok := val["content"]; ok {
			return Unwrap(inner)
		}
		return "", false
	default:
		return "", false
	}
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	if strings.HasSuffix(s, ".00") {
		return strings.TrimSuffix(s, ".00")
	}
	return s
}

// canonicalKey flattens a field name for lookup: lowercase, alphanumerics only.
// "Box 1", "box_1" and "BOX1" all collide deliberately.
func canonicalKey(key string) string {
	b := strings.Builder{}
	for _, r := range strings.ToLower(key) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fieldAliases maps a canonical field key to every spelling seen across
// extraction runs. Lookup happens on flattened keys, so "Box 1" matches "box1".
var fieldAliases = map[string][]string{
	// W-2 monetary boxes
	"wages":               {"wages", "box1", "wagestipsothercomp", "wagestipsothercompensation", "wagesamount"},
	"federalWithholding":  {"federalwithholding", "federalincometaxwithheld", "fedwithholding", "federaltaxwithheld", "withholding"},
	"socialSecurityWages": {"socialsecuritywages", "box3", "sswages"},
	"medicareWages":       {"medicarewages", "box5", "medicarewagesandtips"},

	// 1099-INT
	"interestIncome": {"interestincome", "interest"},

	// 1099-DIV
	"ordinaryDividends":        {"ordinarydividends", "box1a", "totalordinarydividends"},
	"qualifiedDividends":       {"qualifieddividends", "box1b"},
	"capitalGainDistributions": {"capitalgaindistributions", "box2a", "totalcapitalgaindistr", "capitalgains"},

	// 1099-MISC
	"rents":       {"rents", "rent"},
	"royalties":   {"royalties"},
	"otherIncome": {"otherincome"},

	// 1099-NEC
	"nonemployeeCompensation": {"nonemployeecompensation", "noncompensation", "neccompensation"},

	// Identity
	"recipientName":    {"recipientname", "employeename", "name", "employeesname", "recipientsname", "payeename"},
	"recipientTaxID":   {"recipienttaxid", "employeessn", "ssn", "recipienttin", "employeesocialsecuritynumber", "tin", "taxid"},
	"recipientAddress": {"recipientaddress", "employeeaddress", "address", "employeesaddress"},
	"issuerName":       {"issuername", "employername", "payername", "payersname", "employersname"},
	"issuerTaxID":      {"issuertaxid", "employerein", "ein", "payertin", "payersfederalidentificationnumber", "employeridnumber"},
	"issuerAddress":    {"issueraddress", "employeraddress", "payeraddress", "payersaddress"},
}

// box-number spellings differ per form: box 1 is wages on a W-2 but interest
// on a 1099-INT, rents on a 1099-MISC, compensation on a 1099-NEC.
var boxOverrides = map[DocumentType]map[string]string{
	DocW2: {
		"box1": "wages",
		"box2": "federalWithholding",
	},
	Doc1099INT: {
		"box1": "interestIncome",
		"box4": "federalWithholding",
	},
	Doc1099DIV: {
		"box4": "federalWithholding",
	},
	Doc1099MISC: {
		"box1": "rents",
		"box2": "royalties",
		"box3": "otherIncome",
		"box4": "federalWithholding",
	},
	Doc1099NEC: {
		"box1": "nonemployeeCompensation",
		"box4": "federalWithholding",
	},
}

// lookupField finds the raw value for a canonical field, trying every known
// alias spelling plus any per-type box-number override.
func lookupField(raw RawExtraction, docType DocumentType, canonical string) (string, bool) {
	flat := make(map[string]interface{}, len(raw.Fields))
	for k, v := range raw.Fields {
		flat[canonicalKey(k)] = v
	}

	for _, alias := range fieldAliases[canonical] {
		// Box-number aliases are only trusted when that box means this field
		// on this document type.
		if override, shadowed := boxMeaning(docType, alias); shadowed && override != canonical {
			continue
		}
		if v, ok := flat[alias]; ok {
			if s, ok := Unwrap(v); ok {
				return s, true
			}
		}
	}

	// A box override can also map a key that is not in the alias list
	if boxes, ok := boxOverrides[docType]; ok {
		for box, target := range boxes {
			if target != canonical {
				continue
			}
			if v, ok := flat[box]; ok {
				if s, ok := Unwrap(v); ok {
					return s, true
				}
			}
		}
	}

	return "", false
}

func boxMeaning(docType DocumentType, key string) (string, bool) {
	if boxes, ok := boxOverrides[docType]; ok {
		target, ok := boxes[key]
		return target, ok
	}
	return "", false
}
