package script

// preludeJS builds the global wlc object on top of the __wlc_* functions
// registered from Go. Wrapper objects are cached by wrapper id so the same
// native object always maps to the same JS object.
const preludeJS = `
(function() {
	var consts = globalThis.__wlc_consts;
	delete globalThis.__wlc_consts;

	var handlers = Object.create(null);
	var objects = Object.create(null);

	function decode(v) {
		if (Array.isArray(v)) return v.map(decode);
		if (v !== null && typeof v === 'object' && typeof v.$ref === 'string') return ref(v);
		return v;
	}
	function parse(s) { return decode(JSON.parse(s)); }
	function call(id, op, args) {
		return parse(__wlc_call(id, op, JSON.stringify(args || [])));
	}

	function Output(id, handle) { this.id = id; this.handle = handle; }
	Output.prototype.toString = function() { return 'Output(' + this.handle + ')'; };
	['name', 'resolution', 'scale', 'sleeping', 'mask', 'views', 'focus', 'alive'].forEach(function(op) {
		Output.prototype[op] = function() { return call(this.id, op); };
	});
	Output.prototype.setResolution = function(size, scale) { return call(this.id, 'setResolution', [size, (scale || 0) >>> 0]); };
	Output.prototype.setSleep = function(sleep) { return call(this.id, 'setSleep', [!!sleep]); };
	Output.prototype.setMask = function(mask) { return call(this.id, 'setMask', [mask >>> 0]); };

	function View(id, handle) { this.id = id; this.handle = handle; }
	View.prototype.toString = function() { return 'View(' + this.handle + ')'; };
	['title', 'appId', 'class', 'geometry', 'state', 'mask', 'output', 'parent', 'type',
	 'focus', 'close', 'bringToFront', 'sendToBack', 'alive'].forEach(function(op) {
		View.prototype[op] = function() { return call(this.id, op); };
	});
	View.prototype.setGeometry = function(edges, g) { return call(this.id, 'setGeometry', [edges >>> 0, g]); };
	View.prototype.setState = function(state, toggle) { return call(this.id, 'setState', [state >>> 0, !!toggle]); };
	View.prototype.setMask = function(mask) { return call(this.id, 'setMask', [mask >>> 0]); };
	View.prototype.setOutput = function(o) { return call(this.id, 'setOutput', [o ? o.id : 0]); };

	function ref(r) {
		if (r.$ref === 'compositor') return wlc;
		var key = r.$ref + ':' + r.id;
		var o = objects[key];
		if (!o) {
			o = r.$ref === 'output' ? new Output(r.id, r.handle) : new View(r.id, r.handle);
			objects[key] = o;
		}
		return o;
	}

	function logger(level) {
		return function() {
			__wlc_log(level, Array.prototype.map.call(arguments, String).join(' '));
		};
	}

	var wlc = {
		on: function(kind, fn) {
			if (fn !== null && fn !== undefined && typeof fn !== 'function') {
				throw new TypeError('wlc.on: handler for ' + kind + ' must be a function or null');
			}
			var enable = typeof fn === 'function';
			__wlc_on(String(kind), enable);
			if (enable) handlers[kind] = fn; else delete handlers[kind];
		},
		terminate: function() { __wlc_terminate(); },
		exec: function(bin) {
			var args = Array.prototype.slice.call(arguments, 1).map(String);
			__wlc_exec(String(bin), JSON.stringify(args));
		},
		outputs: function() { return parse(__wlc_outputs()); },
		focusedOutput: function() { return parse(__wlc_focused_output()); },
		keysym: function(key, mods) { return __wlc_keysym(key >>> 0, (mods || 0) >>> 0); },
		log: {
			debug: logger('debug'),
			info: logger('info'),
			warn: logger('warn'),
			error: logger('error')
		},
		events: consts.events,
		mod: consts.mod,
		state: consts.state,
		edge: consts.edge,
		type: consts.type
	};
	Object.freeze(wlc.log);
	globalThis.wlc = wlc;

	if (typeof globalThis.console === 'undefined') {
		globalThis.console = { log: wlc.log.info, debug: wlc.log.debug, info: wlc.log.info, warn: wlc.log.warn, error: wlc.log.error };
	}

	globalThis.__wlc_dispatch = function(kind, argsJSON) {
		var fn = handlers[kind];
		if (!fn) return 'null';
		var r = fn.apply(null, parse(argsJSON));
		var s = JSON.stringify(r === undefined ? null : r);
		return s === undefined ? 'null' : s;
	};
	globalThis.__wlc_forget = function(key) { delete objects[key]; };
	globalThis.__wlc_cached = function() { return Object.keys(objects).length; };
})();
`
