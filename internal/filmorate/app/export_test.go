package app

// Generation возвращает текущее поколение кэша популярных фильмов.
func (p *PopularCache) Generation() int64 {
	return p.generation.Load()
}

// EntryKey возвращает ключ записи для count в текущем поколении.
func (p *PopularCache) EntryKey(count int) string {
	return p.key(count)
}
