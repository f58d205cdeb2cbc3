// Package domain define contratos e tipos de domínio do cooldown de votos.
//
// Este pacote não depende de net/http nem de implementações concretas.
// Aqui ficam o formato persistido (vote_cooldown_<site> -> epoch ms), o KVStore,
// o Status devolvido ao consumidor e os contratos de throttle/estatísticas.
package domain
