package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/natefinch/lumberjack"
	"github.com/snowie2000/hdhomerun/global"
	"github.com/snowie2000/hdhomerun/handler"
	"github.com/snowie2000/hdhomerun/route"
	"github.com/snowie2000/hdhomerun/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "hdhomerun",
	Short: "HDHomeRun tuner emulation for DVR clients",
	Long: `hdhomerun keeps a curated channel table scanned from a physical HDHomeRun
tuner and republishes it as an M3U playlist and as an emulated HDHomeRun
network tuner for Plex, Jellyfin and friends.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		datadir, err := dataDir()
		if err != nil {
			return err
		}
		if pwd := viper.GetString("pwd"); pwd != "" {
			return resetPassword(datadir, pwd)
		}
		return serve(datadir, viper.GetString("listen"))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.hdhomerun.yaml)")
	rootCmd.Flags().String("listen", ":9000", "Listening address")
	rootCmd.Flags().String("datadir", "", "Database and log directory (default is ./data next to the binary)")
	rootCmd.Flags().String("pwd", "", "Reset the login password and exit")

	if err := viper.BindPFlags(rootCmd.Flags()); err != nil {
		log.Fatal("Error binding PFlags to viper")
	}
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".hdhomerun")
	}

	viper.SetEnvPrefix("HDHOMERUN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func dataDir() (string, error) {
	datadir := viper.GetString("datadir")
	if datadir == "" {
		ex, err := os.Executable()
		if err != nil {
			return "", err
		}
		datadir = filepath.Join(filepath.Dir(ex), "data")
	}
	datadir, err := homedir.Expand(datadir)
	if err != nil {
		return "", err
	}
	return datadir, os.MkdirAll(datadir, os.ModePerm)
}

func resetPassword(datadir, pwd string) error {
	if err := global.InitDB(filepath.Join(datadir, "hdhomerun.db")); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer global.CloseDB()
	if err := global.SetConfig("password", pwd); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	log.Println("Password has been changed.")
	return nil
}

func serve(datadir, binding string) error {
	logFile := filepath.Join(datadir, "hdhomerun.log")
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}))
	log.Println("Server listen", binding)
	log.Println("Server datadir", datadir)

	if err := global.InitDB(filepath.Join(datadir, "hdhomerun.db")); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer global.CloseDB()

	scheduler := service.NewScheduler()
	defer scheduler.Stop()
	if err := scheduler.Reload(); err != nil {
		log.Println("[cron] invalid auto_scan_interval:", err)
	}
	settings := &global.ConfigStore{OnSave: func() {
		if err := scheduler.Reload(); err != nil {
			log.Println("[cron] invalid auto_scan_interval:", err)
		}
	}}

	d := handler.NewDispatcher(settings, service.HDHomeRun{}, log.Default())
	d.DataDir = datadir
	d.LogFile = logFile

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	store := cookie.NewStore(global.SessionSecret())
	router.Use(sessions.Sessions(global.PackageName, store))
	route.Register(router, d)

	srv := &http.Server{
		Addr:    binding,
		Handler: router,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Panicf("listen: %s\n", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shuting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Println("Server exiting")
	return nil
}
