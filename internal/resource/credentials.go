package resource

import "fmt"

// Credentials is the tagged-variant synthesized access descriptor for a
// database. Each kind implements its own DSN rule; ConnectionURL is always
// re-derived from the other fields, never trusted as input (§3 invariants).
type Credentials interface {
	Kind() DatabaseKind
	Host() string
	Port() string
	User() string
	Password() string
	Database() string
	ConnectionURL() string
}

// PostgresCredentials is the Postgres variant of Credentials.
type PostgresCredentials struct {
	HostAddr string
	PortNum  string
	UserName string
	Pass     string
	DBName   string
}

func (c PostgresCredentials) Kind() DatabaseKind { return KindPostgres }
func (c PostgresCredentials) Host() string       { return c.HostAddr }
func (c PostgresCredentials) Port() string        { return c.PortNum }
func (c PostgresCredentials) User() string        { return c.UserName }
func (c PostgresCredentials) Password() string    { return c.Pass }
func (c PostgresCredentials) Database() string    { return c.DBName }
func (c PostgresCredentials) ConnectionURL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s", c.UserName, c.Pass, c.HostAddr, c.PortNum, c.DBName)
}

// MySQLCredentials is the MySQL variant of Credentials.
type MySQLCredentials struct {
	HostAddr string
	PortNum  string
	UserName string
	Pass     string
	DBName   string
}

func (c MySQLCredentials) Kind() DatabaseKind { return KindMySQL }
func (c MySQLCredentials) Host() string        { return c.HostAddr }
func (c MySQLCredentials) Port() string         { return c.PortNum }
func (c MySQLCredentials) User() string         { return c.UserName }
func (c MySQLCredentials) Password() string     { return c.Pass }
func (c MySQLCredentials) Database() string     { return c.DBName }
func (c MySQLCredentials) ConnectionURL() string {
	return fmt.Sprintf("mysql://%s:%s@%s:%s/%s", c.UserName, c.Pass, c.HostAddr, c.PortNum, c.DBName)
}

// RedisCredentials is the Redis variant. The PaaS API rejects a password
// field on create (§4.1.1 backend bug workaround), so Pass is frequently
// empty — ConnectionURL omits the auth segment in that case.
type RedisCredentials struct {
	HostAddr string
	PortNum  string
	Pass     string
}

func (c RedisCredentials) Kind() DatabaseKind { return KindRedis }
func (c RedisCredentials) Host() string        { return c.HostAddr }
func (c RedisCredentials) Port() string         { return c.PortNum }
func (c RedisCredentials) User() string         { return "" }
func (c RedisCredentials) Password() string     { return c.Pass }
func (c RedisCredentials) Database() string     { return "" }
func (c RedisCredentials) ConnectionURL() string {
	if c.Pass == "" {
		return fmt.Sprintf("redis://%s:%s", c.HostAddr, c.PortNum)
	}
	return fmt.Sprintf("redis://:%s@%s:%s", c.Pass, c.HostAddr, c.PortNum)
}

// MongoCredentials is the MongoDB variant of Credentials.
type MongoCredentials struct {
	HostAddr string
	PortNum  string
	UserName string
	Pass     string
	DBName   string
}

func (c MongoCredentials) Kind() DatabaseKind { return KindMongo }
func (c MongoCredentials) Host() string        { return c.HostAddr }
func (c MongoCredentials) Port() string         { return c.PortNum }
func (c MongoCredentials) User() string         { return c.UserName }
func (c MongoCredentials) Password() string     { return c.Pass }
func (c MongoCredentials) Database() string     { return c.DBName }
func (c MongoCredentials) ConnectionURL() string {
	return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s", c.UserName, c.Pass, c.HostAddr, c.PortNum, c.DBName)
}
