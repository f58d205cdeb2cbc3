// Package infra contém implementações concretas para os contratos do pacote domain.
//
// Exemplos:
//   - KVStore: MemoryKV, RedisKV (go-redis), PostgresKV (pgx), Scoped (isolamento por cliente)
//   - LimiterStore: token bucket por cliente usando golang.org/x/time/rate
//   - StatsStore: memória, Redis, Prometheus e Tee
//   - VotePublisher: KafkaPublisher (segmentio/kafka-go)
//   - SiteCatalog: StaticCatalog, lido de YAML ou dos sites padrão
//   - SlotPool: semáforo simples para limitar streams
package infra
