package heuristic

import "testing"

func checkRust(t *testing.T, pattern, source string) bool {
	t.Helper()
	return rustAnalyzer{}.Check(pattern, []byte(source))
}

func TestRustStrategy(t *testing.T) {
	t.Parallel()
	src := `pub trait Codec {
    fn encode(&self) -> Vec<u8>;
}
`
	if !checkRust(t, "Strategy", src) {
		t.Error("trait declaration should count as strategy evidence")
	}
	if checkRust(t, "Strategy", "pub struct Codec;\n") {
		t.Error("struct-only file should not count")
	}
}

func TestRustFacade(t *testing.T) {
	t.Parallel()
	if !checkRust(t, "Facade", "pub use crate::engine::Engine;\n") {
		t.Error("pub use re-export should count")
	}
	if !checkRust(t, "Facade", "pub mod parser;\npub mod lexer;\n") {
		t.Error("two pub mod declarations should count")
	}
	if checkRust(t, "Facade", "use std::fmt;\nmod internal;\n") {
		t.Error("private use and a single private mod should not count")
	}
}

func TestRustBuilder(t *testing.T) {
	t.Parallel()
	named := `struct RequestBuilder;

impl RequestBuilder {
    fn build(self) -> Request { Request }
}
`
	if !checkRust(t, "Builder", named) {
		t.Error("impl with a build method should count")
	}

	fluent := `struct Query;

impl Query {
    fn limit(mut self, n: u32) -> Self { self }
    fn offset(mut self, n: u32) -> Self { self }
}
`
	if !checkRust(t, "Builder", fluent) {
		t.Error("two Self-returning methods should count")
	}

	if checkRust(t, "Builder", "struct Query;\n\nimpl Query {\n    fn len(&self) -> usize { 0 }\n}\n") {
		t.Error("ordinary impl should not count")
	}
}

func TestRustObserver(t *testing.T) {
	t.Parallel()
	channel := `use std::sync::mpsc;

pub fn pair() -> (mpsc::Sender<Event>, mpsc::Receiver<Event>) {
    mpsc::channel()
}
`
	if !checkRust(t, "Observer", channel) {
		t.Error("channel endpoints should count")
	}

	trait := `pub trait Listener {
    fn subscribe(&mut self);
    fn notify(&self);
}
`
	if !checkRust(t, "Observer", trait) {
		t.Error("trait with observer method names should count")
	}

	if checkRust(t, "Observer", "pub fn add(a: u32, b: u32) -> u32 { a + b }\n") {
		t.Error("plain code should not count")
	}
}

func TestRustFactory(t *testing.T) {
	t.Parallel()
	if !checkRust(t, "Factory", "fn open(kind: &str) -> Box<dyn Store> { todo!() }\n") {
		t.Error("boxed trait object return should count")
	}
	if !checkRust(t, "Factory", "fn reader() -> impl Iterator<Item = u8> { std::iter::empty() }\n") {
		t.Error("impl-trait return should count")
	}
	if checkRust(t, "Factory", "fn size(s: &Store) -> usize { 0 }\n") {
		t.Error("plain function should not count")
	}
}

func TestRustAdapter(t *testing.T) {
	t.Parallel()
	src := `struct Wrapper {
    inner: LegacyApi,
}

impl Store for Wrapper {
    fn get(&self) -> u32 { 0 }
}
`
	if !checkRust(t, "Adapter", src) {
		t.Error("thin wrapper with a trait impl should count")
	}
	if checkRust(t, "Adapter", "struct Wrapper {\n    inner: LegacyApi,\n}\n") {
		t.Error("wrapper without a trait impl should not count")
	}
}

func TestRustDecorator(t *testing.T) {
	t.Parallel()
	src := `struct Timed {
    next: Box<dyn Logger>,
}

impl Logger for Timed {
    fn log(&self, msg: &str) { self.next.log(msg) }
}
`
	if !checkRust(t, "Decorator", src) {
		t.Error("boxed trait object field plus trait impl should count")
	}
	if checkRust(t, "Decorator", "struct Timed {\n    next: Logger,\n}\n") {
		t.Error("plain field without trait objects should not count")
	}
}

func TestRustSingleton(t *testing.T) {
	t.Parallel()
	src := `use std::sync::OnceLock;

static REGISTRY: OnceLock<Registry> = OnceLock::new();
`
	if !checkRust(t, "Singleton", src) {
		t.Error("OnceLock should count")
	}
	if checkRust(t, "Singleton", "static NAME: &str = \"archdoc\";\n") {
		t.Error("plain static should not count")
	}
}

func TestRustCommand(t *testing.T) {
	t.Parallel()
	src := `pub trait Command {
    fn execute(&self) -> Result<(), Error>;
    fn undo(&self);
}
`
	if !checkRust(t, "Command", src) {
		t.Error("trait with invocation verbs should count")
	}
	if checkRust(t, "Command", "pub trait Command {\n    fn name(&self) -> &str;\n}\n") {
		t.Error("trait without invocation verbs should not count")
	}
}

func TestRustUnknownPattern(t *testing.T) {
	t.Parallel()
	if checkRust(t, "Visitor", "pub trait Visitor { fn visit(&self); }\n") {
		t.Error("unknown pattern must yield no evidence")
	}
}
