package security

// In-memory client registry for the storefront surfaces. Secrets move to
// config/secret storage before any real deployment.
type Client struct {
	ID      string
	Secret  string
	Perms   []string
	Enabled bool
}

var Clients = map[string]Client{
	"kiosk": {
		ID:      "kiosk",
		Secret:  "kiosk-secret",
		Perms:   []string{"menu.read", "orders.read", "orders.write"},
		Enabled: true,
	},
	"cashier": {
		ID:      "cashier",
		Secret:  "cashier-secret",
		Perms:   []string{"menu.read", "orders.read", "orders.write"},
		Enabled: true,
	},
	"manager": {
		ID:      "manager",
		Secret:  "manager-secret",
		Perms:   []string{"menu.read", "menu.write", "orders.read", "orders.write"},
		Enabled: true,
	},
	"menu-board": {
		ID:      "menu-board",
		Secret:  "menu-board-secret",
		Perms:   []string{"menu.read"},
		Enabled: true,
	},
}
