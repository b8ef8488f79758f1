package gen

// defaultDomain is the fallback domain when none is provided.
const defaultDomain = "gmail.com"

// DefaultDomains is the built-in email domain allow-list.
var DefaultDomains = []string{
	"gmail.com",
	"hotmail.com",
	"yahoo.com.br",
	"outlook.com",
}

// fullNames is the built-in pool used for random contact generation.
var fullNames = []string{
	"Ana Silva", "Pedro Souza", "Maria Oliveira", "João Santos", "Carla Pereira",
	"Lucas Rodrigues", "Fernanda Lima", "Ricardo Costa", "Juliana Gomes", "Bruno Fernandes",
}

// FullNames returns a copy of the built-in name pool.
func FullNames() []string {
	out := make([]string, len(fullNames))
	copy(out, fullNames)
	return out
}
