package resource

import "strings"

// SanitizeDBName converts a logical database name into a safe SQL
// identifier fragment by turning hyphens into underscores, per §4.1.1's
// kind-specific create payload rules.
func SanitizeDBName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// EnvPrefix derives the env-var key prefix for a logical database name:
// uppercased, hyphens turned into underscores (§4.2).
func EnvPrefix(logicalName string) string {
	return strings.ToUpper(strings.ReplaceAll(logicalName, "-", "_"))
}

// NewCredentials builds the tagged Credentials variant matching kind.
func NewCredentials(kind DatabaseKind, host, user, password, database string) Credentials {
	port := kind.DefaultPort()
	switch kind {
	case KindPostgres:
		return PostgresCredentials{HostAddr: host, PortNum: port, UserName: user, Pass: password, DBName: database}
	case KindMySQL:
		return MySQLCredentials{HostAddr: host, PortNum: port, UserName: user, Pass: password, DBName: database}
	case KindRedis:
		return RedisCredentials{HostAddr: host, PortNum: port, Pass: password}
	case KindMongo:
		return MongoCredentials{HostAddr: host, PortNum: port, UserName: user, Pass: password, DBName: database}
	default:
		return nil
	}
}

// ToEnvEntries derives the environment variables injected for this
// database, following the rules in §4.2: the prefix is the uppercased
// logical name; redis omits USER/PASSWORD (when empty) and DATABASE
// entirely since it has no database concept.
func (d Database) ToEnvEntries() []EnvVarEntry {
	prefix := EnvPrefix(d.Name)
	c := d.Credentials

	entries := []EnvVarEntry{
		{Key: prefix + "_HOST", Value: c.Host()},
		{Key: prefix + "_PORT", Value: c.Port()},
	}

	if c.Kind() != KindRedis {
		entries = append(entries,
			EnvVarEntry{Key: prefix + "_USER", Value: c.User()},
			EnvVarEntry{Key: prefix + "_PASSWORD", Value: c.Password()},
			EnvVarEntry{Key: prefix + "_DATABASE", Value: c.Database()},
		)
	} else if c.Password() != "" {
		entries = append(entries, EnvVarEntry{Key: prefix + "_PASSWORD", Value: c.Password()})
	}

	entries = append(entries, EnvVarEntry{Key: prefix + "_URL", Value: c.ConnectionURL()})
	return entries
}
