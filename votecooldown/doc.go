// Package votecooldown fornece o adapter HTTP do cooldown de votos.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos (formato persistido, KVStore, Status), sem net/http
//   - application: casos de uso (Tracker, Refresher, Throttle, StreamGate), sem net/http
//   - infra: implementações concretas (memória, Redis, Postgres, Kafka, Prometheus, catálogo YAML)
//   - votecooldown (este pacote): rotas chi, identificação do cliente, throttle,
//     stream websocket e formatação HH:MM:SS
//
// Fluxo de um voto (POST /votes/{site}):
//
//  1. Resolve o cliente (header, cookie ou uuid novo) e escopa o store
//  2. Throttle por origem (429 se estourar)
//  3. Se o site ainda está em cooldown, responde 409 com Retry-After
//  4. Grava vote_cooldown_<site> = agora + 12h, registra estatística e publica o evento
//  5. Responde 200 com a URL do site (ou 303 para ela com ?redirect=1)
//
// O binário cmd/cooldownd lê a configuração de variáveis de ambiente, como
// STORE_DRIVER, REDIS_URL, DATABASE_URL, VOTE_RPS e REFRESH_INTERVAL.
package votecooldown
