package config

import (
	"github.com/caskdb/caskdb/internal/bytesize"
)

// Parameter names referenced outside their registration sites.
const (
	ParamConfigFile  = "configfile"
	ParamForeground  = "foreground"
	ParamDBPath      = "db.path"
	ParamCompression = "storage.compression-algorithm"
	ParamHashing     = "storage.hashing-algorithm"
	ParamWriteBuffer = "write-buffer.mode"
	ParamLogLevel    = "log.level"
	ParamLogTarget   = "log.target"
)

// GeneralOptions are the bootstrap-level fields outside the two option
// groups.
type GeneralOptions struct {
	ConfigFile string
	Foreground bool
	DBPath     string
}

// DatabaseOptions configure the storage engine. The enumerated fields
// hold raw literals until Validate materializes them into typed modes.
type DatabaseOptions struct {
	CreateIfMissing      bool
	ErrorIfExists        bool
	CompressionAlgorithm string
	HashingAlgorithm     string
	WriteBufferMode      string
	WriteBufferSize      bytesize.ByteSize `validate:"gt=0"`
	LogLevel             string            `validate:"required"`
	LogTarget            string            `validate:"required"`
}

// ServerOptions configure the network listener and its worker pool.
type ServerOptions struct {
	Port           int               `validate:"min=1,max=65535"`
	ListenBacklog  int               `validate:"gt=0"`
	NumThreads     int               `validate:"gt=0"`
	RecvBufferSize bytesize.ByteSize `validate:"gt=0"`
	SendBufferSize bytesize.ByteSize `validate:"gt=0"`
	MetricsPort    int               `validate:"min=0,max=65535"`
}

// Options is the complete resolved configuration. Constructed once at
// startup and never mutated after the pre-flight checks complete.
type Options struct {
	General  GeneralOptions
	Database DatabaseOptions
	Server   ServerOptions

	registry *Registry
}

// NewOptions declares the full parameter schema on a fresh registry and
// returns the option set with every destination holding its default.
// The write-buffer mode default is retuned from its declared value to
// adaptive; file and command-line values still override it.
func NewOptions() *Options {
	o := &Options{registry: NewRegistry()}
	r := o.registry

	r.AddString(ParamConfigFile, "", &o.General.ConfigFile, false,
		"Path to the configuration file. When absent, ./"+DefaultConfigFile+" and "+SystemConfigFile+" are probed in that order.")
	r.AddFlag(ParamForeground, &o.General.Foreground,
		"Run in the foreground instead of detaching as a background daemon.")
	r.AddString(ParamDBPath, "", &o.General.DBPath, true,
		"Path to the database directory. Mandatory.")

	o.Database.register(r)
	o.Server.register(r)

	r.SetDefault(ParamWriteBuffer, "adaptive")
	return o
}

// Registry exposes the parameter declarations backing this option set.
func (o *Options) Registry() *Registry {
	return o.registry
}

func (d *DatabaseOptions) register(r *Registry) {
	r.AddBool("db.create-if-missing", true, &d.CreateIfMissing,
		"Create the database if it does not already exist.")
	r.AddBool("db.error-if-exists", false, &d.ErrorIfExists,
		"Refuse to start if the database already exists.")
	r.AddString(ParamCompression, "lz4", &d.CompressionAlgorithm, false,
		"Compression algorithm used by the storage engine. Can be 'disabled' or 'lz4'.")
	r.AddString(ParamHashing, "xxhash-64", &d.HashingAlgorithm, false,
		"Hashing algorithm used by the storage engine. Can be 'xxhash-64' or 'murmurhash3-64'.")
	r.AddString(ParamWriteBuffer, "direct", &d.WriteBufferMode, false,
		"Write buffer mode. 'direct' syncs every write to disk, 'adaptive' lets the engine batch.")
	r.AddSize("write-buffer.size", "32MB", &d.WriteBufferSize,
		"Size of the in-memory write buffer.")
	r.AddString(ParamLogLevel, "info", &d.LogLevel, false,
		"Minimum log level: debug, info, warn, or error.")
	r.AddString(ParamLogTarget, "stderr", &d.LogTarget,
		false, "Log destination: stdout, stderr, or a file path.")
}

func (s *ServerOptions) register(r *Registry) {
	r.AddInt("server.port", 3490, &s.Port,
		"Port the server listens on.")
	r.AddInt("server.listen-backlog", 150, &s.ListenBacklog,
		"Size of the listen backlog.")
	r.AddInt("server.num-threads", 150, &s.NumThreads,
		"Maximum number of commands executed concurrently.")
	r.AddSize("server.size-buffer-recv", "64KB", &s.RecvBufferSize,
		"Size of the network receive buffer.")
	r.AddSize("server.size-buffer-send", "1KB", &s.SendBufferSize,
		"Size of the network send buffer.")
	r.AddInt("server.metrics-port", 0, &s.MetricsPort,
		"Port for the Prometheus metrics endpoint. 0 disables metrics.")
}
