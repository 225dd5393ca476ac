package metaads

import (
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestFormatTargetingSpec_AgeAndGenders(t *testing.T) {
	spec := FormatTargetingSpec(TargetingInput{
		AgeMin:  intPtr(25),
		AgeMax:  intPtr(45),
		Genders: []int{1},
	})

	if spec.AgeMin == nil || *spec.AgeMin != 25 {
		t.Errorf("age_min not passed through: %v", spec.AgeMin)
	}
	if spec.AgeMax == nil || *spec.AgeMax != 45 {
		t.Errorf("age_max not passed through: %v", spec.AgeMax)
	}
	if !reflect.DeepEqual(spec.Genders, []int{1}) {
		t.Errorf("genders = %v, want [1]", spec.Genders)
	}
}

func TestFormatTargetingSpec_EmptyGendersOmitted(t *testing.T) {
	spec := FormatTargetingSpec(TargetingInput{Genders: []int{}})
	if spec.Genders != nil {
		t.Errorf("empty gender list should be omitted, got %v", spec.Genders)
	}
}

func TestFormatTargetingSpec_Locations(t *testing.T) {
	tests := []struct {
		name      string
		locations []string
		countries []string
	}{
		{"iso codes pass through", []string{"US", "IN"}, []string{"US", "IN"}},
		{"display name degrades silently", []string{"United States"}, []string{}},
		{"mixed degrades silently", []string{"US", "India"}, []string{}},
		{"single code", []string{"GB"}, []string{"GB"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := FormatTargetingSpec(TargetingInput{Locations: tt.locations})
			if spec.GeoLocations == nil {
				t.Fatal("geo_locations missing")
			}
			if !reflect.DeepEqual(spec.GeoLocations.Countries, tt.countries) {
				t.Errorf("countries = %v, want %v", spec.GeoLocations.Countries, tt.countries)
			}
			if len(spec.GeoLocations.Cities) != 0 || len(spec.GeoLocations.Regions) != 0 {
				t.Errorf("cities/regions should be empty, got %v / %v", spec.GeoLocations.Cities, spec.GeoLocations.Regions)
			}
		})
	}
}

func TestFormatTargetingSpec_ExplicitGeoWinsOverLocations(t *testing.T) {
	geo := &GeoLocations{Countries: []string{"DE"}, Cities: []string{}, Regions: []string{}}
	spec := FormatTargetingSpec(TargetingInput{
		GeoLocations: geo,
		Locations:    []string{"US"},
	})
	if spec.GeoLocations != geo {
		t.Error("explicit geo_locations should pass through verbatim")
	}
}

func TestFormatTargetingSpec_Interests(t *testing.T) {
	spec := FormatTargetingSpec(TargetingInput{
		Interests: []InterestPair{{ID: "6003139266461", Name: "Fitness"}},
	})
	want := []Interest{{ID: "6003139266461", Name: "Fitness"}}
	if !reflect.DeepEqual(spec.Interests, want) {
		t.Errorf("interests = %v, want %v", spec.Interests, want)
	}
}

func TestFormatTargetingSpec_AbsentFieldsOmitted(t *testing.T) {
	spec := FormatTargetingSpec(TargetingInput{})
	if spec.AgeMin != nil || spec.AgeMax != nil || spec.Genders != nil ||
		spec.GeoLocations != nil || spec.Interests != nil {
		t.Errorf("empty input should produce empty spec, got %+v", spec)
	}
}

func TestGenderCodes(t *testing.T) {
	tests := []struct {
		gender string
		codes  []int
	}{
		{"MALE", []int{1}},
		{"FEMALE", []int{2}},
		{"ALL", nil},
		{"", nil},
		{"other", nil},
	}
	for _, tt := range tests {
		t.Run(tt.gender, func(t *testing.T) {
			if got := GenderCodes(tt.gender); !reflect.DeepEqual(got, tt.codes) {
				t.Errorf("GenderCodes(%q) = %v, want %v", tt.gender, got, tt.codes)
			}
		})
	}
}
