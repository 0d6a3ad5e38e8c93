package commands

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gridserpent/engine/api"
	"github.com/gridserpent/engine/session"
)

var (
	serveListen = ":3005"
	promEnable  = true
	promListen  = ":9000"
)

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", serveListen, "api address to listen on")
	serveCmd.Flags().BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	serveCmd.Flags().StringVar(&promListen, "prometheus-listen", promListen, "prometheus http endpoint")
	serveCmd.Flags().StringVarP(&storeBackend, "backend", "b", storeBackend, "score store backend, as one of: [inmem, file, redis, sql]")
	serveCmd.Flags().StringVarP(&storeBackendArgs, "backend-args", "a", storeBackendArgs, "options to pass to the backend being used")
}

var serveCmd = &cobra.Command{
	Use:    "serve",
	Short:  "serve the score api without running a game",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	Run: func(c *cobra.Command, args []string) {
		store, closeStore := openStore()
		defer closeStore()

		srv := api.New(serveListen, session.NewController(), store)
		log.WithField("listen", serveListen).Info("Serpent api serving")
		if err := srv.WaitForExit(); err != nil {
			log.WithError(err).
				WithField("listen", serveListen).
				Fatal("api server failed")
		}
	},
}

func prometheus() {
	if !promEnable {
		log.Info("prometheus exporter not enabled")
		return
	}

	log.WithField("addr", promListen).Info("starting prometheus exporter")
	go func() {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(promListen, r); err != nil {
			log.WithError(err).Warn("prometheus failes to listen")
		}
	}()
}
