package store

import (
	"context"
	"errors"
	"sort"
)

// Resultados de agregación para el dashboard de ventas. Montos en
// centavos, como todo lo demás.

type ProductSales struct {
	ProductID string `json:"producto_id"`
	Nombre    string `json:"nombre"`
	Cantidad  int    `json:"cantidad"`
	Ingresos  int64  `json:"ingresos"`
}

type CategorySales struct {
	CategoryID string `json:"categoria_id"`
	Nombre     string `json:"nombre"`
	Cantidad   int    `json:"cantidad"`
	Ingresos   int64  `json:"ingresos"`
}

type MonthlyRevenue struct {
	Mes   string `json:"mes"` // YYYY-MM
	Total int64  `json:"total"`
}

// Analytics agrupa y reduce sobre el libro de pedidos completo; no hay
// ventanas de tiempo ni escaneos parciales.
type Analytics struct {
	Orders  OrderLedger
	Catalog Catalog
	Users   UserDirectory
}

func NewAnalytics(orders OrderLedger, catalog Catalog, users UserDirectory) *Analytics {
	return &Analytics{Orders: orders, Catalog: catalog, Users: users}
}

func (a *Analytics) TotalRevenue(ctx context.Context) (int64, error) {
	orders, err := a.Orders.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, o := range orders {
		total += o.Total
	}
	return total, nil
}

// TopProducts agrupa los items de todos los pedidos por producto, ordena
// por cantidad descendente (empates estables por primera aparición) y
// resuelve nombres contra el catálogo; un producto borrado desde entonces
// sale como "Desconocido".
func (a *Analytics) TopProducts(ctx context.Context, limit int) ([]ProductSales, error) {
	if limit <= 0 {
		limit = 5
	}

	orders, err := a.Orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*ProductSales)
	var order []string
	for _, o := range orders {
		for _, item := range o.Items {
			g, ok := grouped[item.ProductID]
			if !ok {
				g = &ProductSales{ProductID: item.ProductID}
				grouped[item.ProductID] = g
				order = append(order, item.ProductID)
			}
			g.Cantidad += item.Cantidad
			g.Ingresos += item.Precio * int64(item.Cantidad)
		}
	}

	top := make([]ProductSales, 0, len(order))
	for _, id := range order {
		top = append(top, *grouped[id])
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Cantidad > top[j].Cantidad
	})
	if len(top) > limit {
		top = top[:limit]
	}

	for i := range top {
		product, err := a.Catalog.GetProduct(ctx, top[i].ProductID)
		switch {
		case err == nil:
			top[i].Nombre = product.Nombre
		case errors.Is(err, ErrProductNotFound):
			top[i].Nombre = "Desconocido"
		default:
			return nil, err
		}
	}
	return top, nil
}

// TopCategoryByRevenue une cada item con la categoría embebida de su
// producto y devuelve la de mayores ingresos, o nil sin pedidos.
func (a *Analytics) TopCategoryByRevenue(ctx context.Context) (*CategorySales, error) {
	orders, err := a.Orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*CategorySales)
	var order []string
	for _, o := range orders {
		for _, item := range o.Items {
			product, err := a.Catalog.GetProduct(ctx, item.ProductID)
			if errors.Is(err, ErrProductNotFound) {
				// Sin producto no hay categoría a la que unir.
				continue
			}
			if err != nil {
				return nil, err
			}

			catID := product.Categoria.ID.Hex()
			g, ok := grouped[catID]
			if !ok {
				g = &CategorySales{CategoryID: catID, Nombre: product.Categoria.Nombre}
				grouped[catID] = g
				order = append(order, catID)
			}
			g.Cantidad += item.Cantidad
			g.Ingresos += item.Precio * int64(item.Cantidad)
		}
	}

	var best *CategorySales
	for _, id := range order {
		g := grouped[id]
		if best == nil || g.Ingresos > best.Ingresos {
			best = g
		}
	}
	return best, nil
}

// RevenueByMonth agrupa por mes calendario ascendente los pedidos que
// tienen fecha de creación.
func (a *Analytics) RevenueByMonth(ctx context.Context) ([]MonthlyRevenue, error) {
	orders, err := a.Orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]int64)
	for _, o := range orders {
		if o.CreatedAt.IsZero() {
			continue
		}
		byMonth[o.CreatedAt.UTC().Format("2006-01")] += o.Total
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	series := make([]MonthlyRevenue, 0, len(months))
	for _, m := range months {
		series = append(series, MonthlyRevenue{Mes: m, Total: byMonth[m]})
	}
	return series, nil
}

// CustomerCount cuenta los usuarios que no son administradores.
func (a *Analytics) CustomerCount(ctx context.Context) (int64, error) {
	return a.Users.CountCustomers(ctx)
}
