package orders

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/mcdev12/orderalone/go/internal/apperr"
	"github.com/mcdev12/orderalone/go/internal/models"
)

// Picker draws random orders from a menu. Each topping group contributes one random item
// with probability one half.
type Picker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPicker uses src for every draw. A nil src seeds from the runtime.
func NewPicker(src rand.Source) *Picker {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Picker{rnd: rand.New(src)}
}

func (p *Picker) Pick(menu *models.Menu) (models.OrderSelection, error) {
	if len(menu.Data) == 0 {
		return models.OrderSelection{}, fmt.Errorf("%w: menu %s has no categories", apperr.ErrValidation, menu.Name)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	category := menu.Data[p.rnd.IntN(len(menu.Data))]
	if len(category.Menus) == 0 {
		return models.OrderSelection{}, fmt.Errorf("%w: category %s has no items", apperr.ErrValidation, category.Kategorie)
	}

	selection := models.OrderSelection{
		Category: category.Kategorie,
		Item:     category.Menus[p.rnd.IntN(len(category.Menus))],
	}
	for _, group := range category.Toping {
		if len(group.Items) == 0 || p.rnd.IntN(2) == 0 {
			continue
		}
		selection.Topping = append(selection.Topping, models.SelectedTopping{
			Group: group.Name,
			Item:  group.Items[p.rnd.IntN(len(group.Items))],
		})
	}
	return selection, nil
}
