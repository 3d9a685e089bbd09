// ABOUTME: Route and entry-variant definitions shared by the TUI and web console
// ABOUTME: Maps path-style routes to menu entries for each app variant
package models

import "fmt"

// Route is a path-style view identifier.
type Route string

const (
	RouteCampaign  Route = "/marketing-os"
	RouteHub       Route = "/connectionhub"
	RouteLogin     Route = "/login"
	RouteDashboard Route = "/dashboard"
)

// Variant selects one of the mutually exclusive app entry points.
type Variant string

const (
	VariantWorkspace Variant = "workspace"
	VariantAuth      Variant = "auth"
)

// MenuItem is a sidebar navigation entry.
type MenuItem struct {
	Label string
	Route Route
	Key   string
}

// WorkspaceMenu is the sidebar of the workspace variant.
var WorkspaceMenu = []MenuItem{
	{Label: "Campaign Setup", Route: RouteCampaign, Key: "f1"},
	{Label: "Connection Hub", Route: RouteHub, Key: "f2"},
}

// ParseVariant validates a configured variant name.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantWorkspace, VariantAuth:
		return Variant(s), nil
	case "":
		return VariantWorkspace, nil
	}
	return "", fmt.Errorf("unknown variant %q (want workspace or auth)", s)
}

// Home returns the first route shown for a variant.
func (v Variant) Home() Route {
	if v == VariantAuth {
		return RouteLogin
	}
	return RouteCampaign
}

// Allows reports whether a route belongs to the variant.
func (v Variant) Allows(r Route) bool {
	switch v {
	case VariantAuth:
		return r == RouteLogin || r == RouteDashboard
	default:
		return r == RouteCampaign || r == RouteHub
	}
}
