package domain

import (
	"github.com/tradecore/tradecore/api/internal/query"
)

// Entity names used for cache keys and invalidation patterns.
const (
	EntityCompanies = "companies"
	EntityUsers     = "users"
	EntityProducts  = "products"
	EntityOrders    = "orders"
	EntityInventory = "inventory"
)

// CompanyRegistry builds the query field registry for companies.
func CompanyRegistry() *query.Registry[Company] {
	return query.NewRegistry(query.RegistryConfig[Company]{
		Entity:     EntityCompanies,
		Searchable: "name",
		Includes:   []string{"users"},
		Fields: []query.Field[Company]{
			{Name: "id", Kind: query.KindID, Get: func(c Company) any { return c.ID }},
			{Name: "name", Kind: query.KindString, Get: func(c Company) any { return c.Name }},
			{Name: "industry", Kind: query.KindEnum, Get: func(c Company) any { return string(c.Industry) }},
			{Name: "email", Kind: query.KindString, Get: func(c Company) any { return c.Email }},
			{Name: "isActive", Kind: query.KindBool, Get: func(c Company) any { return c.IsActive }},
			{Name: "employeeCount", Kind: query.KindNumber, Get: func(c Company) any { return c.EmployeeCount }},
			{Name: "createdAt", Kind: query.KindDate, Get: func(c Company) any { return c.CreatedAt }},
			{Name: "updatedAt", Kind: query.KindDate, Get: func(c Company) any { return c.UpdatedAt }},
		},
		Project: projectCompany,
	})
}

func projectCompany(c Company, fields []string) Company {
	keep := fieldSet(fields)
	out := Company{ID: c.ID, Users: c.Users}
	if keep["name"] {
		out.Name = c.Name
	}
	if keep["industry"] {
		out.Industry = c.Industry
	}
	if keep["email"] {
		out.Email = c.Email
	}
	if keep["isactive"] {
		out.IsActive = c.IsActive
	}
	if keep["employeecount"] {
		out.EmployeeCount = c.EmployeeCount
	}
	if keep["createdat"] {
		out.CreatedAt = c.CreatedAt
	}
	if keep["updatedat"] {
		out.UpdatedAt = c.UpdatedAt
	}
	return out
}

// UserRegistry builds the query field registry for users.
func UserRegistry() *query.Registry[User] {
	return query.NewRegistry(query.RegistryConfig[User]{
		Entity:     EntityUsers,
		Searchable: "email",
		Includes:   []string{"company"},
		Fields: []query.Field[User]{
			{Name: "id", Kind: query.KindID, Get: func(u User) any { return u.ID }},
			{Name: "companyId", Kind: query.KindID, Get: func(u User) any { return u.CompanyID }},
			{Name: "email", Kind: query.KindString, Get: func(u User) any { return u.Email }},
			{Name: "firstName", Kind: query.KindString, Get: func(u User) any { return u.FirstName }},
			{Name: "lastName", Kind: query.KindString, Get: func(u User) any { return u.LastName }},
			{Name: "role", Kind: query.KindEnum, Get: func(u User) any { return string(u.Role) }},
			{Name: "isActive", Kind: query.KindBool, Get: func(u User) any { return u.IsActive }},
			{Name: "createdAt", Kind: query.KindDate, Get: func(u User) any { return u.CreatedAt }},
			{Name: "updatedAt", Kind: query.KindDate, Get: func(u User) any { return u.UpdatedAt }},
		},
		Project: projectUser,
	})
}

func projectUser(u User, fields []string) User {
	keep := fieldSet(fields)
	out := User{ID: u.ID, Company: u.Company}
	if keep["companyid"] {
		out.CompanyID = u.CompanyID
	}
	if keep["email"] {
		out.Email = u.Email
	}
	if keep["firstname"] {
		out.FirstName = u.FirstName
	}
	if keep["lastname"] {
		out.LastName = u.LastName
	}
	if keep["role"] {
		out.Role = u.Role
	}
	if keep["isactive"] {
		out.IsActive = u.IsActive
	}
	if keep["createdat"] {
		out.CreatedAt = u.CreatedAt
	}
	if keep["updatedat"] {
		out.UpdatedAt = u.UpdatedAt
	}
	return out
}

// ProductRegistry builds the query field registry for products.
func ProductRegistry() *query.Registry[Product] {
	return query.NewRegistry(query.RegistryConfig[Product]{
		Entity:     EntityProducts,
		Searchable: "name",
		Includes:   []string{"inventory"},
		Fields: []query.Field[Product]{
			{Name: "id", Kind: query.KindID, Get: func(p Product) any { return p.ID }},
			{Name: "sku", Kind: query.KindString, Get: func(p Product) any { return p.SKU }},
			{Name: "name", Kind: query.KindString, Get: func(p Product) any { return p.Name }},
			{Name: "description", Kind: query.KindString, Get: func(p Product) any { return p.Description }},
			{Name: "price", Kind: query.KindNumber, Get: func(p Product) any { return p.Price }},
			{Name: "category", Kind: query.KindEnum, Get: func(p Product) any { return string(p.Category) }},
			{Name: "isActive", Kind: query.KindBool, Get: func(p Product) any { return p.IsActive }},
			{Name: "createdAt", Kind: query.KindDate, Get: func(p Product) any { return p.CreatedAt }},
			{Name: "updatedAt", Kind: query.KindDate, Get: func(p Product) any { return p.UpdatedAt }},
		},
		Project: projectProduct,
	})
}

func projectProduct(p Product, fields []string) Product {
	keep := fieldSet(fields)
	out := Product{ID: p.ID, Inventory: p.Inventory}
	if keep["sku"] {
		out.SKU = p.SKU
	}
	if keep["name"] {
		out.Name = p.Name
	}
	if keep["description"] {
		out.Description = p.Description
	}
	if keep["price"] {
		out.Price = p.Price
	}
	if keep["category"] {
		out.Category = p.Category
	}
	if keep["isactive"] {
		out.IsActive = p.IsActive
	}
	if keep["createdat"] {
		out.CreatedAt = p.CreatedAt
	}
	if keep["updatedat"] {
		out.UpdatedAt = p.UpdatedAt
	}
	return out
}

// OrderRegistry builds the query field registry for orders.
func OrderRegistry() *query.Registry[Order] {
	return query.NewRegistry(query.RegistryConfig[Order]{
		Entity:     EntityOrders,
		Searchable: "number",
		Includes:   []string{"items", "customer"},
		Fields: []query.Field[Order]{
			{Name: "id", Kind: query.KindID, Get: func(o Order) any { return o.ID }},
			{Name: "companyId", Kind: query.KindID, Get: func(o Order) any { return o.CompanyID }},
			{Name: "userId", Kind: query.KindID, Get: func(o Order) any { return o.UserID }},
			{Name: "number", Kind: query.KindString, Get: func(o Order) any { return o.Number }},
			{Name: "status", Kind: query.KindEnum, Get: func(o Order) any { return string(o.Status) }},
			{Name: "total", Kind: query.KindNumber, Get: func(o Order) any { return o.Total }},
			{Name: "placedAt", Kind: query.KindDate, Get: func(o Order) any { return o.PlacedAt }},
			{Name: "createdAt", Kind: query.KindDate, Get: func(o Order) any { return o.CreatedAt }},
			{Name: "updatedAt", Kind: query.KindDate, Get: func(o Order) any { return o.UpdatedAt }},
		},
		Project: projectOrder,
	})
}

func projectOrder(o Order, fields []string) Order {
	keep := fieldSet(fields)
	out := Order{ID: o.ID, Items: o.Items, Customer: o.Customer}
	if keep["companyid"] {
		out.CompanyID = o.CompanyID
	}
	if keep["userid"] {
		out.UserID = o.UserID
	}
	if keep["number"] {
		out.Number = o.Number
	}
	if keep["status"] {
		out.Status = o.Status
	}
	if keep["total"] {
		out.Total = o.Total
	}
	if keep["placedat"] {
		out.PlacedAt = o.PlacedAt
	}
	if keep["createdat"] {
		out.CreatedAt = o.CreatedAt
	}
	if keep["updatedat"] {
		out.UpdatedAt = o.UpdatedAt
	}
	return out
}

// InventoryRegistry builds the query field registry for inventory records.
func InventoryRegistry() *query.Registry[InventoryItem] {
	return query.NewRegistry(query.RegistryConfig[InventoryItem]{
		Entity:     EntityInventory,
		Searchable: "warehouseCode",
		Includes:   []string{"product"},
		Fields: []query.Field[InventoryItem]{
			{Name: "id", Kind: query.KindID, Get: func(i InventoryItem) any { return i.ID }},
			{Name: "productId", Kind: query.KindID, Get: func(i InventoryItem) any { return i.ProductID }},
			{Name: "warehouseCode", Kind: query.KindString, Get: func(i InventoryItem) any { return i.WarehouseCode }},
			{Name: "quantity", Kind: query.KindNumber, Get: func(i InventoryItem) any { return i.Quantity }},
			{Name: "reserved", Kind: query.KindNumber, Get: func(i InventoryItem) any { return i.Reserved }},
			{Name: "updatedAt", Kind: query.KindDate, Get: func(i InventoryItem) any { return i.UpdatedAt }},
		},
	})
}

func fieldSet(fields []string) map[string]bool {
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
