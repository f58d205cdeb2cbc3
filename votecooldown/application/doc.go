// Package application contém os casos de uso do cooldown de votos.
//
// Ele depende apenas do pacote domain e não conhece net/http.
//
//   - Tracker: RecordVote / QueryStatus / RefreshAll sobre um domain.KVStore
//   - Refresher: laço periódico que reconsulta o estado (1x por minuto por padrão)
//   - Throttle: decisão allow/deny de taxa por cliente
//   - StreamGate: limite de streams abertos
package application
