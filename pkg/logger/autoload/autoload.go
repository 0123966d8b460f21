// Package autoload initializes the global logger from the environment as a
// side effect of being imported.
package autoload

import (
	configx "github.com/kanchang12/wastekingjennifer-sub000/pkg/config"
	logx "github.com/kanchang12/wastekingjennifer-sub000/pkg/logger"
)

func init() {
	conf := configx.MustNew[logx.Config]("LOG")
	logx.Init(*conf)
}
