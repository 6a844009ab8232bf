package main

import (
	"flag"
	"fmt"
	"os"

	"go-imagine-keys/internal/cachekey"
	"go-imagine-keys/internal/config"
	"go-imagine-keys/internal/metrics"
	"go-imagine-keys/internal/orientation"
	"go-imagine-keys/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var Version string
var BuildTime string

func main() {
	configFile := flag.String("f", "", "path to config file (default: configs/config.yml)")
	namespace := flag.String("ns", "", "namespace of the size to print")
	size := flag.String("size", "", "size name to print, requires -ns")
	imageFile := flag.String("orientation", "", "print the orientation of an image file and exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Version: %s, BuildTime: %s\n", Version, BuildTime)
		return
	}

	metrics.Register()

	if *imageFile != "" {
		os.Exit(printOrientation(*imageFile))
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.InitLogger(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.With(zap.String("runId", uuid.New().String()))

	if *size != "" {
		if err := printSize(cfg, *namespace, *size); err != nil {
			log.Error("failed to build cache key", zap.String("namespace", *namespace), zap.String("size", *size), zap.Error(err))
			os.Exit(1)
		}
		return
	}

	hasher, err := cfg.Hasher()
	if err != nil {
		log.Fatal("failed to create hasher", zap.Error(err))
	}
	table, err := hasher.HashAll(cfg.ImageSizes)
	if err != nil {
		log.Fatal("failed to hash image sizes", zap.Error(err))
	}
	log.Info("image sizes hashed", zap.Int("namespaces", len(table)))

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	if err := enc.Encode(table); err != nil {
		log.Fatal("failed to write digest table", zap.Error(err))
	}
}

func printSize(cfg *config.Config, namespace, name string) error {
	ops, ok := cfg.Size(namespace, name)
	if !ok {
		return fmt.Errorf("size %s.%s not configured", namespace, name)
	}

	fragment, err := cachekey.Serialize(ops, cfg.KeyOptions())
	if err != nil {
		return err
	}
	hasher, err := cfg.Hasher()
	if err != nil {
		return err
	}
	sum, err := hasher.Hash(ops)
	if err != nil {
		return err
	}

	fmt.Printf("key:    %s\ndigest: %s\n", fragment, sum)
	return nil
}

func printOrientation(path string) int {
	res, err := orientation.Read(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if res.Kind == orientation.ParseFailed {
		fmt.Printf("%s: %s (%v)\n", path, res.Kind, res.Err)
		return 0
	}
	fmt.Printf("%s: %s %d\n", path, res.Kind, res.Angle())
	return 0
}
