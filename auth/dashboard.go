package auth

import "github.com/drylogics/marketingos/models"

// WelcomeText is the dashboard greeting.
const WelcomeText = "Welcome to the Dashboard! 🎉"

// Dashboard is the page shown after login.
type Dashboard struct {
	navigate func(models.Route)
}

func NewDashboard(navigate func(models.Route)) *Dashboard {
	return &Dashboard{navigate: navigate}
}

func (d *Dashboard) Welcome() string {
	return WelcomeText
}

// Logout returns to the login screen.
func (d *Dashboard) Logout() {
	if d.navigate != nil {
		d.navigate(models.RouteLogin)
	}
}
