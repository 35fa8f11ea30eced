// Command churnctl строит аналитику оттока по CSV-датасету из командной строки,
// выгружает дашборд в Excel, считает скоринг, импортирует датасет в Postgres
// и выпускает токены администратора.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
