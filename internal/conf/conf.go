package conf

type Bootstrap struct {
	Server   *Server
	Data     *Data
	Auth     *Auth
	Severity *Severity
	Cache    *Cache
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Database *Database
}

type Database struct {
	Driver string
	Source string
}

type Auth struct {
	JwtKey string
}

// Severity 远端字段严重度服务（可选；BaseUrl 为空则只用静态表）
type Severity struct {
	BaseUrl string
	Timeout string
	// Rpm/Qps 限制对远端服务的访问频率
	Rpm int32
	Qps int32
	// Refresh 两次后台刷新之间的最小间隔
	Refresh string
}

// Cache 各视图的查询缓存失效窗口（time.ParseDuration 格式，按调用点 2–10 分钟）
type Cache struct {
	Situation   string
	Aggregation string
	Entities    string
	Incidents   string
	Resources   string
}
