package catalog

import "github.com/jaan-distributors/storefront/pkg/model"

var seedCategories = []model.Category{
	{ID: 1, Name: "Fresh Produce", Slug: "fresh-produce", Description: "Farm-fresh fruits and vegetables", Image: "/placeholder.svg", ProductCount: 45},
	{ID: 2, Name: "Dairy & Eggs", Slug: "dairy-eggs", Description: "Fresh dairy products and eggs", Image: "/placeholder.svg", ProductCount: 32},
	{ID: 3, Name: "Meat & Seafood", Slug: "meat-seafood", Description: "Quality meats and fresh seafood", Image: "/placeholder.svg", ProductCount: 28},
	{ID: 4, Name: "Bakery", Slug: "bakery", Description: "Fresh baked goods daily", Image: "/placeholder.svg", ProductCount: 24},
	{ID: 5, Name: "Pantry Staples", Slug: "pantry-staples", Description: "Essential cooking ingredients", Image: "/placeholder.svg", ProductCount: 67},
	{ID: 6, Name: "Beverages", Slug: "beverages", Description: "Drinks and refreshments", Image: "/placeholder.svg", ProductCount: 41},
	{ID: 7, Name: "Frozen Foods", Slug: "frozen-foods", Description: "Frozen meals and ingredients", Image: "/placeholder.svg", ProductCount: 35},
	{ID: 8, Name: "Snacks", Slug: "snacks", Description: "Chips, nuts, and treats", Image: "/placeholder.svg", ProductCount: 52},
}

var seedProducts = []model.Product{
	{
		ID: 1, Name: "Organic Bananas", Slug: "organic-bananas",
		Description:      "Premium organic bananas sourced from sustainable farms. Perfect for smoothies, baking, or as a healthy snack.",
		ShortDescription: "Fresh organic bananas",
		Price:            2.99, ComparePrice: 3.49, SKU: "FP-001",
		CategoryID: 1, CategoryName: "Fresh Produce",
		Images:        []string{"/placeholder.svg"},
		StockQuantity: 150, StockStatus: model.StockInStock,
		Unit: "bunch", Weight: 1.2, IsFeatured: true,
		CreatedAt: "2024-01-15", UpdatedAt: "2024-01-20",
	},
	{
		ID: 2, Name: "Farm Fresh Eggs", Slug: "farm-fresh-eggs",
		Description:      "Free-range eggs from local farms. Rich in flavor and nutrients, perfect for any meal.",
		ShortDescription: "Free-range eggs, dozen",
		Price:            5.99, SKU: "DE-001",
		CategoryID: 2, CategoryName: "Dairy & Eggs",
		Images:        []string{"/placeholder.svg"},
		StockQuantity: 80, StockStatus: model.StockInStock,
		Unit: "dozen", IsFeatured: true,
		CreatedAt: "2024-01-10", UpdatedAt: "2024-01-20",
	},
	{
		ID: 3, Name: "Atlantic Salmon Fillet", Slug: "atlantic-salmon-fillet",
		Description:      "Fresh Atlantic salmon, sustainably sourced. Rich in omega-3 fatty acids and perfect for grilling or baking.",
		ShortDescription: "Fresh salmon fillet",
		Price:            14.99, ComparePrice: 17.99, SKU: "MS-001",
		CategoryID: 3, CategoryName: "Meat & Seafood",
		Images:        []string{"/placeholder.svg"},
		StockQuantity: 25, StockStatus: model.StockInStock,
		Unit: "lb", Weight: 1, IsFeatured: true, IsNew: true,
		CreatedAt: "2024-01-18", UpdatedAt: "2024-01-20",
	},
	{
		ID: 4, Name: "Artisan Sourdough Bread", Slug: "artisan-sourdough-bread",
		Description:      "Handcrafted sourdough bread made with traditional fermentation methods. Crusty exterior with soft, tangy interior.",
		ShortDescription: "Fresh baked sourdough",
		Price:            6.49, SKU: "BK-001",
		CategoryID: 4, CategoryName: "Bakery",
		Images:        []string{"/placeholder.svg"},
		StockQuantity: 30, StockStatus: model.StockInStock,
		Unit: "loaf", IsNew: true,
		CreatedAt: "2024-01-19", UpdatedAt: "2024-01-20",
	},
	{
		ID: 5, Name: "Extra Virgin Olive Oil", Slug: "extra-virgin-olive-oil",
		Description:      "Cold-pressed extra virgin olive oil from Mediterranean olives. Perfect for cooking and dressings.",
		ShortDescription: "Premium olive oil, 1L",
		Price:            12.99, SKU: "PS-001",
		CategoryID: 5, CategoryName: "Pantry Staples",
		Images:        []string{"/placeholder.svg"},
		StockQuantity: 60, StockStatus: model.StockInStock,
		Unit: "bottle", Weight: 1, IsFeatured: true,
		CreatedAt: "2024-01-05", UpdatedAt: "2024-01-20",
	},
	{
		ID: 6, Name: "Fresh Squeezed Orange Juice", Slug: "fresh-squeezed-orange-juice",
		Description:      "Freshly squeezed orange juice with no added sugar. Pure, refreshing, and packed with vitamin C.",
		ShortDescription: "Fresh OJ, 64oz",
		Price:            7.99, SKU: "BV-001",
		CategoryID: 6, CategoryName: "Beverages",
		Images:        []string{"/placeholder.svg"},
		StockQuantity: 45, StockStatus: model.StockInStock,
		Unit: "bottle",
		CreatedAt: "2024-01-12", UpdatedAt: "2024-01-20",
	},
	{
		ID: 7, Name: "Organic Baby Spinach", Slug: "organic-baby-spinach",
		Description:      "Tender organic baby spinach leaves, pre-washed and ready to eat. Perfect for salads and smoothies.",
		ShortDescription: "Organic spinach, 5oz",
		Price:            4.49, SKU: "FP-002",
		CategoryID: 1, CategoryName: "Fresh Produce",
		Images:        []string{"/placeholder.svg"},
		StockQuantity: 5, StockStatus: model.StockLow,
		Unit: "bag",
		CreatedAt: "2024-01-08", UpdatedAt: "2024-01-20",
	},
	{
		ID: 8, Name: "Greek Yogurt", Slug: "greek-yogurt",
		Description:      "Creamy Greek yogurt with live active cultures. High protein, low fat, perfect for breakfast or snacking.",
		ShortDescription: "Plain Greek yogurt, 32oz",
		Price:            6.99, SKU: "DE-002",
		CategoryID: 2, CategoryName: "Dairy & Eggs",
		Images:        []string{"/placeholder.svg"},
		StockQuantity: 0, StockStatus: model.StockOut,
		Unit: "container",
		CreatedAt: "2024-01-06", UpdatedAt: "2024-01-20",
	},
}
