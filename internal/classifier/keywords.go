package classifier

import "strings"

// databaseKeywords là danh sách các hệ quản trị dữ liệu phổ biến dùng chung
// cho cả hai heuristic. So khớp substring trên chuỗi đã chuẩn hóa chữ thường.
var databaseKeywords = []string{
	"mysql",
	"mariadb",
	"postgres",
	"postgresql",
	"sqlite",
	"mssql",
	"oracle",
	"db2",
	"mongodb",
	"couchdb",
	"couchbase",
	"cassandra",
	"redis",
	"memcached",
	"neo4j",
	"elasticsearch",
	"dynamodb",
	"cosmosdb",
	"firestore",
	"firebase",
	"hbase",
	"influxdb",
	"clickhouse",
	"cockroachdb",
	"arangodb",
	"rethinkdb",
}

func containsDatabaseKeyword(normalized string) bool {
	for _, keyword := range databaseKeywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}
