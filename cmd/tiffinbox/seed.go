package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiffinbox/tiffinbox/app"
	"github.com/tiffinbox/tiffinbox/bootstrap"
	"github.com/tiffinbox/tiffinbox/config"
	"github.com/tiffinbox/tiffinbox/domain/identity"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo menu, coupons, and an admin account",
	Long: `Populate the database with a demo restaurant menu, a set of
percentage coupons, and an admin account (admin@restaurant.com / Admin@123).

Safe to run against an existing database: records that already exist are
skipped.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedItem struct {
	name        string
	description string
	price       float64
	imageURL    string
	isAlcoholic bool
}

type seedCategory struct {
	name        string
	description string
	imageURL    string
	items       []seedItem
}

var seedMenu = []seedCategory{
	{
		name:        "Breakfast",
		description: "Start your day with delicious South Indian breakfast",
		imageURL:    "https://images.unsplash.com/photo-1630383249896-424e482df921?w=400",
		items: []seedItem{
			{"Masala Dosa", "Crispy rice crepe filled with spiced potato filling", 80, "https://images.unsplash.com/photo-1668236543090-82eba5ee5976?w=400", false},
			{"Idli", "Steamed rice cakes served with sambar and chutney", 60, "https://images.unsplash.com/photo-1589301760014-d929f3979dbc?w=400", false},
			{"Puri", "Deep-fried, puffed bread served with a spiced potato curry.", 50, "https://images.unsplash.com/photo-1605719161691-5d9771fc144f?w=400", false},
		},
	},
	{
		name:        "Starters",
		description: "Appetizing starters to begin your meal",
		imageURL:    "https://images.unsplash.com/photo-1601050690597-df0568f70950?w=400",
		items: []seedItem{
			{"Paneer Tikka", "Grilled cottage cheese marinated in spices", 180, "https://images.unsplash.com/photo-1701579231320-cc2f7acad3cd?w=400", false},
			{"Samosa", "Crispy pastry filled with spiced potatoes and peas", 40, "https://images.unsplash.com/photo-1601050690597-df0568f70950?w=400", false},
			{"Pav Bhaji", "Buttery, spiced vegetable mash served with toasted bread rolls", 90, "https://images.unsplash.com/photo-1626132647523-66f5bf380027?w=400", false},
		},
	},
	{
		name:        "Main Course",
		description: "Rich and flavorful main course dishes",
		imageURL:    "https://images.unsplash.com/photo-1585937421612-70a008356fbe?w=400",
		items: []seedItem{
			{"Butter Chicken", "Tender chicken in rich tomato and butter gravy", 280, "https://images.unsplash.com/photo-1603894584373-5ac82b2ae398?w=400", false},
			{"Paneer Butter Masala", "Cottage cheese cubes in creamy tomato gravy", 220, "https://images.unsplash.com/photo-1631452180519-c014fe946bc7?w=400", false},
			{"Chole Bhature", "Spicy chickpeas with fried bread", 150, "https://images.unsplash.com/photo-1717587052948-fb9825de50f8?w=400", false},
		},
	},
	{
		name:        "Rice & Biryani",
		description: "Aromatic rice dishes and biryanis",
		imageURL:    "https://images.unsplash.com/photo-1563379091339-03b21ab4a4f8?w=400",
		items: []seedItem{
			{"Veg Biryani", "Aromatic basmati rice with mixed vegetables", 200, "https://images.unsplash.com/photo-1563379091339-03b21ab4a4f8?w=400", false},
			{"Chicken Biryani", "Fragrant rice layered with spiced chicken", 280, "https://images.unsplash.com/photo-1719239885399-f87d992e0f18?w=400", false},
		},
	},
	{
		name:        "Desserts",
		description: "Sweet treats to end your meal",
		imageURL:    "https://images.unsplash.com/photo-1618897996318-5a901fa6ca71?w=400",
		items: []seedItem{
			{"Gulab Jamun", "Deep fried milk dumplings in sugar syrup", 60, "https://images.unsplash.com/photo-1681476747916-8a8fc7e2001e?w=400", false},
			{"Kulfi", "Traditional Indian ice cream", 70, "https://images.unsplash.com/photo-1633933037611-f26e54366832?w=400", false},
		},
	},
	{
		name:        "Beverages",
		description: "Refreshing non-alcoholic drinks",
		imageURL:    "https://images.unsplash.com/photo-1556881286-fc6915169721?w=400",
		items: []seedItem{
			{"Masala Chai", "Traditional Indian spiced tea", 30, "https://images.unsplash.com/photo-1619581073186-5b4ae1b0caad?w=400", false},
			{"Mango Lassi", "Creamy yogurt drink with mango", 80, "https://images.unsplash.com/photo-1623065422902-30a2d299bbe4?w=400", false},
			{"Fresh Lime Soda", "Refreshing lime soda with sweet or salty option", 40, "https://images.unsplash.com/photo-1523677011781-c91d1bbe2f9e?w=400", false},
		},
	},
	{
		name:        "Alcoholic Drinks",
		description: "Premium alcoholic beverages (18+ only)",
		imageURL:    "https://images.unsplash.com/photo-1514362545857-3bc16c4c7d1b?w=400",
		items: []seedItem{
			{"Kingfisher Beer", "Premium Indian lager Beer", 180, "https://images.unsplash.com/photo-1552317579-fb701baef383?w=400", true},
			{"Red Wine", "Premium red wine (750ml)", 1200, "https://images.unsplash.com/photo-1553361371-9b22f78e8b1d?w=400", true},
			{"Mojito Cocktail", "Classic mojito with rum, mint and lime", 280, "https://images.unsplash.com/photo-1632995561645-86a7777d3e7a?w=400", true},
		},
	},
}

type seedCoupon struct {
	code            string
	discountPercent int
	minOrderAmount  float64
	description     string
}

var seedCoupons = []seedCoupon{
	{"WELCOME10", 10, 500, "Get 10% off on orders above ₹500"},
	{"HELLO15", 15, 1000, "Get 15% off on orders above ₹1000"},
	{"SAVE20", 20, 1500, "Get 20% off on orders above ₹1500"},
	{"VIP25", 25, 2000, "Get 25% off on orders above ₹2000"},
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	// Seeding never needs the metrics registry
	cfg.Metrics.Enabled = false

	a, err := bootstrap.New(cfg)
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}
	defer a.Shutdown()

	ctx := context.Background()

	if err := seedAdmin(ctx, a); err != nil {
		return err
	}

	for _, sc := range seedMenu {
		cat, err := a.Menu.CreateCategory(ctx, sc.name, sc.description, sc.imageURL)
		if err != nil {
			fmt.Printf("Category %q skipped: %v\n", sc.name, err)
			continue
		}
		for _, it := range sc.items {
			_, err := a.Menu.CreateItem(ctx, app.ItemParams{
				Name:        it.name,
				Description: it.description,
				Price:       it.price,
				CategoryID:  cat.ID,
				ImageURL:    it.imageURL,
				IsAvailable: true,
				IsAlcoholic: it.isAlcoholic,
			})
			if err != nil {
				fmt.Printf("Item %q skipped: %v\n", it.name, err)
			}
		}
	}

	for _, c := range seedCoupons {
		if _, err := a.Coupons.Create(ctx, c.code, c.discountPercent, c.minOrderAmount, c.description); err != nil {
			fmt.Printf("Coupon %q skipped: %v\n", c.code, err)
		}
	}

	fmt.Println("Database seeded successfully")
	fmt.Println("Admin credentials: admin@restaurant.com / Admin@123")
	return nil
}

func seedAdmin(ctx context.Context, a *bootstrap.App) error {
	ident, err := identity.NewEmail("admin@restaurant.com")
	if err != nil {
		return err
	}

	if _, err := a.Users.GetByIdentifier(ctx, ident); err == nil {
		fmt.Println("Admin account already exists, skipped")
		return nil
	}

	u, err := a.Auth.Signup(ctx, "Admin User", ident, "Admin@123")
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	u.Role = identity.RoleAdmin
	if err := a.Users.Update(ctx, u); err != nil {
		return fmt.Errorf("promote admin: %w", err)
	}

	fmt.Println("Admin account created")
	return nil
}
