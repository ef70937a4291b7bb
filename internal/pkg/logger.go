package pkg

import "go.uber.org/zap"

var Logger = zap.NewNop()

// InitLogger 初始化全局 zap logger
func InitLogger() error {
	l, err := zap.NewProduction()
	if err != nil {
		return err
	}
	Logger = l
	return nil
}
