package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormInputValidate(t *testing.T) {
	cases := []struct {
		name  string
		input FormInput
		ok    bool
	}{
		{"running with cadence", FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "150"}, true},
		{"cycling with elevation", FormInput{Type: "cycling", Distance: "20", Duration: "60", Elevation: "300"}, true},
		{"cycling with zero elevation", FormInput{Type: "cycling", Distance: "20", Duration: "60", Elevation: "0"}, true},
		{"cycling with descent", FormInput{Type: "cycling", Distance: "20", Duration: "60", Elevation: "-40"}, true},
		{"negative distance", FormInput{Type: "running", Distance: "-1", Duration: "30", Cadence: "150"}, false},
		{"zero duration", FormInput{Type: "running", Distance: "5", Duration: "0", Cadence: "150"}, false},
		{"blank distance", FormInput{Type: "running", Distance: "", Duration: "30", Cadence: "150"}, false},
		{"garbage distance", FormInput{Type: "running", Distance: "far", Duration: "30", Cadence: "150"}, false},
		{"running without cadence or elevation", FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "0"}, false},
		{"running accepts elevation instead of cadence", FormInput{Type: "running", Distance: "5", Duration: "30", Elevation: "10"}, true},
		{"cycling accepts cadence instead of elevation", FormInput{Type: "cycling", Distance: "20", Duration: "60", Cadence: "80"}, true},
		{"non numeric elevation", FormInput{Type: "cycling", Distance: "20", Duration: "60", Elevation: "hilly"}, false},
		{"whitespace elevation counts as zero", FormInput{Type: "cycling", Distance: "20", Duration: "60", Elevation: " "}, true},
		{"infinite distance", FormInput{Type: "running", Distance: "Infinity", Duration: "30", Cadence: "150"}, false},
		{"inf duration", FormInput{Type: "running", Distance: "5", Duration: "inf", Cadence: "150"}, false},
		{"inf cadence", FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "inf"}, false},
		{"nan cadence", FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "NaN"}, false},
		{"cycling with garbage elevation and cadence", FormInput{Type: "cycling", Distance: "20", Duration: "60", Cadence: "150", Elevation: "abc"}, false},
		{"running with garbage cadence and elevation", FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "fast", Elevation: "10"}, false},
		{"overflowing elevation", FormInput{Type: "cycling", Distance: "20", Duration: "60", Elevation: "1e400"}, false},
		{"unknown type", FormInput{Type: "swimming", Distance: "1", Duration: "30", Cadence: "40"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.input.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}
