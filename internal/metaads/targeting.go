package metaads

// TargetingSpec is the audience-selection structure embedded in an ad set
// creation request. It is built fresh per call and has no identity of its own.
type TargetingSpec struct {
	AgeMin       *int          `json:"age_min,omitempty"`
	AgeMax       *int          `json:"age_max,omitempty"`
	Genders      []int         `json:"genders,omitempty"` // empty=all, 1=male, 2=female
	GeoLocations *GeoLocations `json:"geo_locations,omitempty"`
	Interests    []Interest    `json:"interests,omitempty"`
}

type GeoLocations struct {
	Countries []string `json:"countries"`
	Cities    []string `json:"cities"`
	Regions   []string `json:"regions"`
}

type Interest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InterestPair is the loose (id, name) form interests arrive in.
type InterestPair struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TargetingInput is the loosely-shaped targeting description collected from
// the advertiser. Every field is optional.
type TargetingInput struct {
	AgeMin       *int           `json:"age_min,omitempty"`
	AgeMax       *int           `json:"age_max,omitempty"`
	Genders      []int          `json:"genders,omitempty"`
	GeoLocations *GeoLocations  `json:"geo_locations,omitempty"`
	Locations    []string       `json:"locations,omitempty"` // flat country-code list
	Interests    []InterestPair `json:"interests,omitempty"`
}

// FormatTargetingSpec normalizes a loose targeting description into the
// platform's schema. The mapping is partial and additive: absent input
// fields are simply omitted, nothing is validated. A flat location list is
// treated as country codes only when every entry looks like ISO-2; anything
// else degrades to an empty country list rather than an error.
func FormatTargetingSpec(in TargetingInput) TargetingSpec {
	spec := TargetingSpec{
		AgeMin: in.AgeMin,
		AgeMax: in.AgeMax,
	}

	if len(in.Genders) > 0 {
		spec.Genders = in.Genders
	}

	switch {
	case in.GeoLocations != nil:
		spec.GeoLocations = in.GeoLocations
	case len(in.Locations) > 0:
		countries := in.Locations
		for _, loc := range in.Locations {
			if len(loc) != 2 {
				countries = []string{}
				break
			}
		}
		spec.GeoLocations = &GeoLocations{
			Countries: countries,
			Cities:    []string{},
			Regions:   []string{},
		}
	}

	if len(in.Interests) > 0 {
		interests := make([]Interest, 0, len(in.Interests))
		for _, p := range in.Interests {
			interests = append(interests, Interest{ID: p.ID, Name: p.Name})
		}
		spec.Interests = interests
	}

	return spec
}

// GenderCodes maps the form-level gender word onto the platform's integer
// codes. Anything unrecognized targets everyone.
func GenderCodes(gender string) []int {
	switch gender {
	case "MALE":
		return []int{1}
	case "FEMALE":
		return []int{2}
	default:
		return nil
	}
}
