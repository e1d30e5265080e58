package main

import (
	"CampusPlanner/internal/bootstrap"
	pkg "CampusPlanner/pkg/routes"

	"go.uber.org/fx"
)

func main() {
	bootstrap.Loadenv()

	app := fx.New(
		pkg.EchoModules,
	)

	app.Run()
}
