package settingsrepo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schoolstore/internal/adapters/out/postgres/settingsrepo"
)

// The key constants are the contract with operators populating the settings
// table; a rename here silently reverts every tunable to its fallback.
func TestSettingKeys(t *testing.T) {
	assert.Equal(t, "default_packaging_weight_grams", settingsrepo.KeyDefaultPackagingWeightGrams)
	assert.Equal(t, "volumetric_divisor", settingsrepo.KeyVolumetricDivisor)
	assert.Equal(t, "weight_rounding_grams", settingsrepo.KeyWeightRoundingGrams)
	assert.Equal(t, "school_delivery_charge", settingsrepo.KeySchoolDeliveryCharge)
	assert.Equal(t, "home_delivery_charge", settingsrepo.KeyHomeDeliveryCharge)
}
