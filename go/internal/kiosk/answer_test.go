package kiosk

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerBuilder_CategoryChangeClearsItemAndToppings(t *testing.T) {
	a := NewAnswerBuilder()
	a.SetCategory("Burger")
	a.SetItem("Buff Burger")
	a.ToggleTopping("Cheese")

	a.SetCategory("Burger")
	assert.Equal(t, "Buff Burger", a.Item(), "same category keeps the item")
	assert.True(t, a.HasTopping("Cheese"))

	a.SetCategory("Drink")
	assert.Equal(t, "Drink", a.Category())
	assert.Empty(t, a.Item())
	assert.Empty(t, a.Toppings())
	assert.False(t, a.Complete())
}

func TestAnswerBuilder_ChooseItemSwitchesCategory(t *testing.T) {
	a := NewAnswerBuilder()
	a.ChooseItem("Burger", "Buff Burger")
	a.ToggleTopping("Bacon")

	a.ChooseItem("Burger", "Chicken Burger")
	assert.Equal(t, "Chicken Burger", a.Item())
	assert.Equal(t, []string{"Bacon"}, a.Toppings())

	a.ChooseItem("Drink", "Cola")
	assert.Equal(t, "Drink", a.Category())
	assert.Equal(t, "Cola", a.Item())
	assert.Empty(t, a.Toppings())
	assert.True(t, a.Complete())
}

func TestAnswerBuilder_ToggleParity(t *testing.T) {
	names := []string{"Cheese", "Bacon", "Onion", "Pickle", "Egg"}
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		a := NewAnswerBuilder()
		a.SetCategory("Burger")
		counts := map[string]int{}

		steps := rng.Intn(40)
		for i := 0; i < steps; i++ {
			if rng.Intn(10) == 0 {
				next := []string{"Burger", "Drink", "Side"}[rng.Intn(3)]
				if next != a.Category() {
					counts = map[string]int{}
				}
				a.SetCategory(next)
				continue
			}
			name := names[rng.Intn(len(names))]
			selected := a.ToggleTopping(name)
			counts[name]++
			assert.Equal(t, counts[name]%2 == 1, selected)
		}

		for _, name := range names {
			assert.Equal(t, counts[name]%2 == 1, a.HasTopping(name), "run %d topping %s", run, name)
		}
	}
}

func TestAnswerBuilder_ToppingsSortedAndReset(t *testing.T) {
	a := NewAnswerBuilder()
	a.ChooseItem("Burger", "Buff Burger")
	a.ToggleTopping("Onion")
	a.ToggleTopping("Bacon")
	a.ToggleTopping("Cheese")

	assert.Equal(t, []string{"Bacon", "Cheese", "Onion"}, a.Toppings())

	a.Reset()
	assert.Empty(t, a.Category())
	assert.Empty(t, a.Item())
	assert.Empty(t, a.Toppings())
}
