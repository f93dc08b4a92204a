package forms

import (
	"time"

	"github.com/dmitrijs2005/eslconsole/internal/client/models"
)

func StoreForm() Spec[models.Store] {
	return Spec[models.Store]{
		Noun:     "store",
		Blank:    models.NewStore,
		Validate: models.Store.Validate,
	}
}

func ProductForm() Spec[models.Product] {
	return Spec[models.Product]{
		Noun:     "product",
		Blank:    models.NewProduct,
		Validate: models.Product.Validate,
	}
}

func ESLForm() Spec[models.ESL] {
	return Spec[models.ESL]{
		Noun:     "ESL",
		Blank:    models.NewESL,
		Validate: models.ESL.Validate,
		BeforeCreate: func(e models.ESL, _ time.Time) models.ESL {
			e.MarkCreated()
			return e
		},
	}
}

func GatewayForm() Spec[models.Gateway] {
	return Spec[models.Gateway]{
		Noun:     "gateway",
		Blank:    models.NewGateway,
		Validate: models.Gateway.Validate,
		BeforeCreate: func(g models.Gateway, now time.Time) models.Gateway {
			g.MarkCreated(now)
			return g
		},
	}
}

func UserForm() Spec[models.User] {
	return Spec[models.User]{
		Noun:     "user",
		Blank:    models.NewUser,
		Validate: models.User.Validate,
	}
}

// BlurPricing recomputes the selling price after the MRP or discount field
// loses focus. It reports whether the price changed.
func BlurPricing(m *Modal[models.Product]) (bool, error) {
	var changed bool
	err := m.Edit(func(p *models.Product) {
		changed = p.Reprice()
	})
	return changed, err
}
