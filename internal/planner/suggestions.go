package planner

import "github.com/Luks9/geo-rota/internal/domain/apperr"

// SuggestVehicles implements §4.5a: a purely combinatorial rule with no
// fleet lookup. unseated / 5 sedans (capacity 5), and a remaining 1..4
// unseated riders suggest one hatch (capacity 4). Grounded on
// _sugerir_veiculos_para_quantidade.
func SuggestVehicles(unseated int) []apperr.VehicleSuggestion {
	if unseated <= 0 {
		return nil
	}

	var suggestions []apperr.VehicleSuggestion

	sedans := unseated / 5
	remainder := unseated % 5

	if sedans > 0 {
		served := sedans * 5
		if served > unseated {
			served = unseated
		}
		suggestions = append(suggestions, apperr.VehicleSuggestion{
			Type:               "sedan",
			Quantity:           sedans,
			CapacityPerVehicle: 5,
			PassengersServed:   served,
		})
	}

	if remainder > 0 {
		if remainder <= 4 {
			suggestions = append(suggestions, apperr.VehicleSuggestion{
				Type:               "hatch",
				Quantity:           1,
				CapacityPerVehicle: 4,
				PassengersServed:   remainder,
			})
		} else {
			suggestions = append(suggestions, apperr.VehicleSuggestion{
				Type:               "sedan",
				Quantity:           1,
				CapacityPerVehicle: 5,
				PassengersServed:   remainder,
			})
		}
	}

	return suggestions
}
